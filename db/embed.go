package db

import "embed"

// Migrations — SQL-миграции схемы, применяются при старте через golang-migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
