package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanly-backend/internal/adapter/http"
	axmw "loanly-backend/internal/adapter/middleware"
	"loanly-backend/internal/adapter/repository/mysql"
	"loanly-backend/internal/config"
	accountDomain "loanly-backend/internal/domain/account"
	contractDomain "loanly-backend/internal/domain/contract"
	reputationDomain "loanly-backend/internal/domain/reputation"
	"loanly-backend/internal/infrastructure/cache"
	"loanly-backend/internal/infrastructure/db"
	accountUC "loanly-backend/internal/usecase/account"
	"loanly-backend/internal/usecase/lifecycle"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&contractDomain.Contract{},
		&reputationDomain.Reputation{},
		&accountDomain.Account{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	contracts := mysql.NewContractRepository(gdb)
	reputations := mysql.NewReputationRepository(gdb)
	accounts := mysql.NewAccountRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	lifecycleUC := lifecycle.NewUsecase(contracts, reputations, guow)
	accUC := accountUC.NewUsecase(accounts, guow)

	h := httpadp.NewHandler()
	ch := httpadp.NewContractHandler(lifecycleUC)
	ah := httpadp.NewAccountHandler(accUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := axmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/contracts", ch.CreateContract, idemp)
	e.POST("/contracts/:loaner_id/confirm", ch.ConfirmContract, idemp)
	e.POST("/contracts/:loaner_id/pay", ch.PayContract, idemp)
	e.GET("/contracts/:loaner_id", ch.GetContract)
	e.GET("/reputations/:loaner_id", ch.GetReputation)

	e.POST("/accounts/:account_id/deposit", ah.Deposit, idemp)
	e.GET("/accounts/:account_id", ah.GetAccount)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
