// Package profile implements the named connection-profile store (spec.md
// §6): a TOML file at the OS config directory's casql/connections.toml
// mapping profile name to partial connection parameters, merged field by
// field with CLI flags — flags win. Grounded on original_source/'s
// src/connections.rs, using github.com/BurntSushi/toml the way it already
// sits in the teacher's own module graph.
package profile

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caslabs/casql/internal/casqlerr"
	"github.com/caslabs/casql/internal/conn"
)

// Record is one named profile's partial connection parameters: every field
// optional, since a profile may supply only some of host/port/user/etc and
// rely on flags for the rest.
type Record struct {
	Host     *string `toml:"host"`
	Port     *uint16 `toml:"port"`
	User     *string `toml:"user"`
	Password *string `toml:"password"`
	Database *string `toml:"database"`
}

// Store is the on-disk map of profile name to Record.
type Store map[string]Record

// Path returns the OS config directory's casql/connections.toml path.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", casqlerr.Wrap(casqlerr.ConfigError, err)
	}
	return filepath.Join(dir, "casql", "connections.toml"), nil
}

// Load reads and parses the profile store. A missing file is not an error
// — it decodes as an empty Store, since --conn is optional.
func Load() (Store, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	store := Store{}
	if _, err := toml.DecodeFile(path, &store); err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, casqlerr.Wrapf(casqlerr.ConfigError, err, "reading %s", path)
	}
	return store, nil
}

// Lookup returns the named profile, or a ConfigError if it isn't present.
func (s Store) Lookup(name string) (Record, error) {
	rec, ok := s[name]
	if !ok {
		return Record{}, casqlerr.Newf(casqlerr.ConfigError, "no such connection profile %q", name)
	}
	return rec, nil
}

// Merge combines r's fields with flags, flags taking precedence field by
// field — a flag value is only overridden by the profile when the flag
// itself was left at its zero value. This is the explicit merge the
// original's src/connections.rs performs and spec.md §6 otherwise leaves
// to "the collaborator's responsibility".
func (r Record) Merge(flags conn.Params) conn.Params {
	out := flags
	if out.Host == "" && r.Host != nil {
		out.Host = *r.Host
	}
	if out.Port == 0 && r.Port != nil {
		out.Port = *r.Port
	}
	if out.User == "" && r.User != nil {
		out.User = *r.User
	}
	if out.Password == "" && r.Password != nil {
		out.Password = *r.Password
	}
	if out.Database == "" && r.Database != nil {
		out.Database = *r.Database
	}
	return out
}
