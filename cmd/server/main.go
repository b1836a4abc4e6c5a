package main

import (
	"fmt"
	"net/http"

	"vinopack/audit"
	"vinopack/config"
	"vinopack/db"
	"vinopack/db/mongo"
	"vinopack/db/postgres"
	"vinopack/handlers"
	"vinopack/repository"
	"vinopack/routes"
	"vinopack/utils"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var engine db.DB
	var receiptRepo repository.ReceiptRepository
	var supplyRepo repository.SupplyRepository
	var packRepo repository.PackRepository
	var dispatchRepo repository.DispatchRepository
	var userRepo repository.UserRepository
	var profileRepo repository.ProfileRepository
	var auditRepo repository.AuditRepository

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		// Run migrations (Postgres only)
		db.RunMigrations()

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		engine = pg

		receiptRepo = repository.NewPostgresReceiptRepo(pg.Conn)
		supplyRepo = repository.NewPostgresSupplyRepo(pg.Conn)
		packRepo = repository.NewPostgresPackRepo(pg.Conn)
		dispatchRepo = repository.NewPostgresDispatchRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		profileRepo = repository.NewPostgresProfileRepo(pg.Conn)
		auditRepo = repository.NewPostgresAuditRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		engine = mg

		receiptRepo = repository.NewMongoReceiptRepo(mg.Client)
		supplyRepo = repository.NewMongoSupplyRepo(mg.Client)
		packRepo = repository.NewMongoPackRepo(mg.Client)
		dispatchRepo = repository.NewMongoDispatchRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)
		profileRepo = repository.NewMongoProfileRepo(mg.Client)
		auditRepo = repository.NewMongoAuditRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}
	defer engine.Disconnect()

	auditRec := audit.NewRecorder(auditRepo)

	// Every stock-derived read reloads through the same loader
	loader := &handlers.DatasetLoader{
		ReceiptRepo: receiptRepo,
		PackRepo:    packRepo,
		SupplyRepo:  supplyRepo,
	}

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo}
	receiptHandler := &handlers.ReceiptHandler{Repo: receiptRepo, Audit: auditRec}
	supplyHandler := &handlers.SupplyHandler{Repo: supplyRepo, Audit: auditRec}
	modelHandler := &handlers.PackModelHandler{Repo: packRepo, Audit: auditRec}
	packHandler := &handlers.PackHandler{Repo: packRepo, Loader: loader, Audit: auditRec}
	dispatchHandler := &handlers.DispatchHandler{Repo: dispatchRepo, PackRepo: packRepo, Audit: auditRec}
	inventoryHandler := &handlers.InventoryHandler{Loader: loader}
	profileHandler := &handlers.ProfileHandler{Repo: profileRepo}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}

	// PDF handler with combined repository
	pdfRepo := repository.NewPDFRepository(dispatchRepo, profileRepo)
	pdfHandler := &handlers.PDFHandler{Repo: pdfRepo, SavePath: cfg.PDFSavePath}

	// Label extraction (optional external service)
	extractHandler := &handlers.ExtractHandler{Client: utils.NewLabelExtractClient(cfg.LabelExtractURL)}

	routes.SetupRoutes(
		userHandler,
		receiptHandler,
		supplyHandler,
		modelHandler,
		packHandler,
		dispatchHandler,
		inventoryHandler,
		profileHandler,
		auditHandler,
		pdfHandler,
		extractHandler,
	)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
