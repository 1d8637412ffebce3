package main

import (
	"fmt"
	"net/http"

	"github.com/expenseflow/expense-backend-go/internal/config"
	appHTTP "github.com/expenseflow/expense-backend-go/internal/handler/http"
	"github.com/expenseflow/expense-backend-go/internal/pkg/countries"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
	"github.com/expenseflow/expense-backend-go/internal/pkg/exchange"
	"github.com/expenseflow/expense-backend-go/internal/pkg/jwt"
	"github.com/expenseflow/expense-backend-go/internal/pkg/oauth"
	"github.com/expenseflow/expense-backend-go/internal/pkg/ocr"
	"github.com/expenseflow/expense-backend-go/internal/repository/postgresql"
	approvalService "github.com/expenseflow/expense-backend-go/internal/service/approval"
	serviceAuth "github.com/expenseflow/expense-backend-go/internal/service/auth"
	serviceCompany "github.com/expenseflow/expense-backend-go/internal/service/company"
	expenseService "github.com/expenseflow/expense-backend-go/internal/service/expense"
	userService "github.com/expenseflow/expense-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	expenseApprovalRepo := postgresql.NewExpenseApprovalRepository(db)
	approvalRuleRepo := postgresql.NewApprovalRuleRepository(db)
	approvalStepRepo := postgresql.NewApprovalStepRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	exchangeClient := exchange.NewClient(cfg.External.ExchangeRateURL)
	countriesClient := countries.NewClient(cfg.External.RestCountriesURL)
	receiptScanner := ocr.NewSimulatedScanner()

	authSvc := serviceAuth.NewAuthService(db, userRepo, companyRepo, JWTService, JWTRepository)
	companySvc := serviceCompany.NewCompanyService(companyRepo)
	userSvc := userService.NewUserService(userRepo)
	ruleSvc := approvalService.NewRuleService(db, approvalRuleRepo, approvalStepRepo, userRepo)
	decisionSvc := approvalService.NewDecisionService(db, expenseRepo, expenseApprovalRepo, approvalRuleRepo, companyRepo, exchangeClient)
	expenseSvc := expenseService.NewExpenseService(db, expenseRepo, expenseApprovalRepo, approvalRuleRepo, approvalStepRepo, userRepo, companyRepo, exchangeClient)

	handlers := appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		Company:  appHTTP.NewCompanyHandler(companySvc),
		User:     appHTTP.NewUserHandler(userSvc),
		Expense:  appHTTP.NewExpenseHandler(expenseSvc),
		Approval: appHTTP.NewApprovalHandler(ruleSvc, decisionSvc),
		Meta:     appHTTP.NewMetaHandler(countriesClient, exchangeClient),
		Receipt:  appHTTP.NewReceiptHandler(receiptScanner),
	}

	router := appHTTP.NewRouter(JWTService, handlers, cfg.App.FrontendURL)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
