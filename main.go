package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/peklos/nextbank/config"
	"github.com/peklos/nextbank/controllers"
	"github.com/peklos/nextbank/database"
	"github.com/peklos/nextbank/middleware"
	"github.com/peklos/nextbank/services"
	"github.com/peklos/nextbank/storage"
	"github.com/peklos/nextbank/utils"
)

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Sprintf("Ошибка загрузки конфигурации: %v", err))
	}

	log := utils.NewLogger(cfg.LogLevel)

	// Инициализируем подключение к базе данных
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer database.Close(db)

	// Общая инфраструктура
	metrics := utils.NewMetrics()
	limiter := utils.NewRateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowS)*time.Second)
	cipher := utils.NewCardCipher(cfg.CardPublicKey, cfg.CardPrivateKey)
	ledger := storage.NewGormLedger(db)

	// Инициализируем сервисы
	emailService := services.NewEmailService(cfg)
	keyRateService := services.NewKeyRateService(cfg, log)
	clientService := services.NewClientService(db)
	accountService := services.NewAccountService(db)
	cardService := services.NewCardService(db, cipher)
	transactionService := services.NewTransactionService(db)
	moneyService := services.NewMoneyService(ledger, emailService, metrics, log)
	loanService := services.NewLoanService(ledger, keyRateService, emailService, metrics, log)

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(clientService, cfg)
	profileController := controllers.NewProfileController(clientService)
	accountController := controllers.NewAccountController(accountService)
	cardController := controllers.NewCardController(cardService, moneyService)
	loanController := controllers.NewLoanController(loanService)
	transactionController := controllers.NewTransactionController(transactionService)

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.LoggingMiddleware(log, metrics))
	router.Use(middleware.RateLimitMiddleware(limiter))

	// Публичные маршруты для аутентификации
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(cfg.JWT.SecretKey)))

	// Профиль клиента
	protected.HandleFunc("/profile/me", profileController.Me).Methods("GET")
	protected.HandleFunc("/profile/personal-info", profileController.UpdatePersonalInfo).Methods("PUT")

	// Маршруты для работы со счетами
	protected.HandleFunc("/accounts", accountController.CreateAccount).Methods("POST")
	protected.HandleFunc("/accounts", accountController.GetAccounts).Methods("GET")
	protected.HandleFunc("/accounts/{id}", accountController.DeleteAccount).Methods("DELETE")

	// Маршруты для работы с картами и денежными операциями
	protected.HandleFunc("/cards", cardController.IssueCard).Methods("POST")
	protected.HandleFunc("/cards", cardController.GetCards).Methods("GET")
	protected.HandleFunc("/cards/{id}/deactivate", cardController.DeactivateCard).Methods("POST")
	protected.HandleFunc("/cards/{id}", cardController.DeleteCard).Methods("DELETE")
	protected.HandleFunc("/cards/{id}/deposit", cardController.Deposit).Methods("POST")
	protected.HandleFunc("/cards/{id}/withdraw", cardController.Withdraw).Methods("POST")
	protected.HandleFunc("/cards/{id}/transfer", cardController.Transfer).Methods("POST")

	// Маршруты для работы с кредитами
	protected.HandleFunc("/loans/apply", loanController.ApplyLoan).Methods("POST")
	protected.HandleFunc("/loans", loanController.GetLoans).Methods("GET")
	protected.HandleFunc("/loans/{id}", loanController.GetLoan).Methods("GET")
	protected.HandleFunc("/loans/{id}/pay", loanController.PayLoan).Methods("POST")
	protected.HandleFunc("/loans/{id}/schedule", loanController.GetSchedule).Methods("GET")

	// Маршруты истории транзакций
	protected.HandleFunc("/transactions", transactionController.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions/search", transactionController.SearchTransactions).Methods("GET")
	protected.HandleFunc("/transactions/stats", transactionController.GetStats).Methods("GET")
	protected.HandleFunc("/transactions/{id}", transactionController.GetTransaction).Methods("GET")

	// Снимок метрик приложения
	protected.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics.GetMetricsSnapshot())
	}).Methods("GET")

	// Запускаем сервер
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Infof("Сервер запущен на порту %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
