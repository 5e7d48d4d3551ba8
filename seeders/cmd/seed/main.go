package main

import (
	"flag"
	"log"
	"os"

	"sport-inventory/pkg/config"
	"sport-inventory/pkg/database/postgresql"
	"sport-inventory/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCatalog := flag.Bool("catalog", false, "Создать категории и стартовое оборудование")
	runAdmin := flag.Bool("admin", false, "Создать администратора (ADMIN_EMAIL, ADMIN_PASSWORD)")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runCatalog && !*runAdmin && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -catalog")
		log.Println("  ADMIN_EMAIL=pe@school.ru ADMIN_PASSWORD=secret go run ./seeders/cmd/seed -admin")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if err := postgresql.Migrate(dbPool); err != nil {
		log.Fatalf("❌ Не удалось применить миграции: %v", err)
	}
	log.Println("======================================================")

	if *runAll || *runCatalog {
		seeders.SeedCatalog(dbPool)
		log.Println("======================================================")
	}
	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))
		log.Println("======================================================")
	}

	log.Println("🎉 Все выбранные сидеры успешно выполнены!")
}
