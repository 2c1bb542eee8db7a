package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/caslabs/casql/internal/casqlerr"
	"github.com/caslabs/casql/internal/conn"
	"github.com/caslabs/casql/internal/profile"
)

type queryFlags struct {
	host     string
	port     uint16
	user     string
	password string
	dbname   string
	connName string
	postgis  bool
}

var qf queryFlags

var queryCmd = &cobra.Command{
	Use:   "query [options] <sql>",
	Short: "Execute <sql> and stream the result set as a JSON array on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := resolveParams(cmd.Flags().Changed("host"))
		if err != nil {
			return err
		}
		c, err := conn.Dial(params, nil)
		if err != nil {
			reportAndExit(err)
			return nil
		}
		defer c.Close()

		if err := c.Query(args[0], os.Stdout); err != nil {
			reportAndExit(err)
			return nil
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func resolveParams(hostSet bool) (conn.Params, error) {
	flags := conn.Params{
		Host:             qf.host,
		Port:             qf.port,
		User:             qf.user,
		Password:         qf.password,
		Database:         qf.dbname,
		EnableExtensions: qf.postgis,
	}
	if qf.connName == "" {
		if flags.User == "" {
			return conn.Params{}, casqlerr.New(casqlerr.ArgError, "casql: -U/--username is required")
		}
		return flags, nil
	}
	store, err := profile.Load()
	if err != nil {
		return conn.Params{}, err
	}
	rec, err := store.Lookup(qf.connName)
	if err != nil {
		return conn.Params{}, err
	}
	if !hostSet {
		flags.Host = ""
	}
	merged := rec.Merge(flags)
	if merged.Host == "" {
		merged.Host = "localhost"
	}
	if merged.User == "" {
		return conn.Params{}, casqlerr.New(casqlerr.ArgError, "casql: -U/--username is required")
	}
	return merged, nil
}

func init() {
	queryCmd.Flags().StringVarP(&qf.host, "host", "H", "localhost", "Server host")
	queryCmd.Flags().Uint16VarP(&qf.port, "port", "p", 0, "Server port (default 5432)")
	queryCmd.Flags().StringVarP(&qf.user, "username", "U", "", "Postgres user name")
	queryCmd.Flags().StringVarP(&qf.password, "password", "W", "", "Postgres password")
	queryCmd.Flags().StringVarP(&qf.dbname, "dbname", "d", "", "Database name (defaults to the user name)")
	queryCmd.Flags().StringVarP(&qf.connName, "conn", "c", "", "Named saved connection profile")
	queryCmd.Flags().BoolVar(&qf.postgis, "postgis", false, "Prefetch PostGIS type oids so geometry columns decode to GeoJSON")
	rootCmd.AddCommand(queryCmd)
}
