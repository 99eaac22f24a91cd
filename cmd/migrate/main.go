package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/genekit/inventory-api/pkg/config"
)

// Runner de migraciones con goose sobre el driver estándar de pgx.
// Uso: migrate [-dir migrations] <up|down|status|version>
func main() {
	dir := flag.String("dir", "migrations", "directorio con los archivos de migración")
	flag.Parse()

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		fmt.Fprintln(os.Stderr, "abrir conexión:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Fprintln(os.Stderr, "dialecto:", err)
		os.Exit(1)
	}

	if err := goose.Run(command, db, *dir, args...); err != nil {
		fmt.Fprintf(os.Stderr, "goose %s: %v\n", command, err)
		os.Exit(1)
	}
}
