package main

import (
	"flag"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	db     = flag.String("database", "postgres", "")
	host   = flag.String("host", "localhost:5432", "")
	user   = flag.String("user", "postgres", "")
	pass   = flag.String("password", "", "")
	source = flag.String("source", "file://db/migrations", "")
	down   = flag.Bool("down", false, "roll back every migration")
)

func main() {
	flag.Parse()
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", *user, *pass, *host, *db)
	m, err := migrate.New(*source, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}
	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		log.Fatal(err)
	}
	log.Printf("accounts schema at version %d (dirty=%t)", version, dirty)
}
