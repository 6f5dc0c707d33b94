package main

import (
	"Catalog/config"
	"Catalog/routers"
	"Catalog/services"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		panic("無法讀取設定檔")
	}

	db, err := config.SetupMySQLConnection(cfg.Database)
	if err != nil {
		panic("無法連接到資料庫")
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	//Redis僅作為標籤列表快取，連線失敗時停用快取
	rdb, err := config.SetupRedisConnection(cfg.Redis)
	if err != nil {
		log.Printf("無法連接到Redis，停用快取: %v\n", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	svc := services.NewCatalogService(db, rdb)
	router := routers.SetupRouters(svc)
	err = router.Run(":" + cfg.Server.Port)
	if err != nil {
		log.Fatalf("伺服器啟動失敗: %v\n", err)
	}
}
