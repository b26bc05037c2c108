// Package main seeds demo data: merchants, a month of transactions,
// two weeks of withdrawals and the default alert thresholds. Meant for
// local development; it wipes the existing rows first.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"pulso/internal/config"
	"pulso/internal/models"
	"pulso/internal/repositories"

	"github.com/google/uuid"
)

const (
	transactionCount = 1500
	withdrawalCount  = 100
)

var merchantCatalog = []models.Merchant{
	{MerchantID: "MERCH-001", BusinessName: "TechMart Mexico", Status: models.MerchantStatusActive, Tier: models.TierEnterprise},
	{MerchantID: "MERCH-002", BusinessName: "Fashion Hub", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
	{MerchantID: "MERCH-003", BusinessName: "Gourmet Delights", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
	{MerchantID: "MERCH-004", BusinessName: "AutoParts Express", Status: models.MerchantStatusActive, Tier: models.TierEnterprise},
	{MerchantID: "MERCH-005", BusinessName: "Digital Services MX", Status: models.MerchantStatusActive, Tier: models.TierStarter},
	{MerchantID: "MERCH-006", BusinessName: "HomeStyle Furniture", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
	{MerchantID: "MERCH-007", BusinessName: "SportZone", Status: models.MerchantStatusActive, Tier: models.TierEnterprise},
	{MerchantID: "MERCH-008", BusinessName: "PetLove Store", Status: models.MerchantStatusActive, Tier: models.TierStarter},
	{MerchantID: "MERCH-009", BusinessName: "ElectroWorld", Status: models.MerchantStatusActive, Tier: models.TierEnterprise},
	{MerchantID: "MERCH-010", BusinessName: "Beauty Palace", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
	{MerchantID: "MERCH-011", BusinessName: "BookHaven", Status: models.MerchantStatusActive, Tier: models.TierStarter},
	{MerchantID: "MERCH-012", BusinessName: "Toy Kingdom", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
	{MerchantID: "MERCH-013", BusinessName: "Garden Center MX", Status: models.MerchantStatusActive, Tier: models.TierStarter},
	{MerchantID: "MERCH-014", BusinessName: "Luxury Watches", Status: models.MerchantStatusActive, Tier: models.TierEnterprise},
	{MerchantID: "MERCH-015", BusinessName: "Organic Market", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
	{MerchantID: "MERCH-016", BusinessName: "Art Gallery MX", Status: models.MerchantStatusPendingReview, Tier: models.TierStarter},
	{MerchantID: "MERCH-017", BusinessName: "Kitchen World", Status: models.MerchantStatusSuspended, Tier: models.TierStarter},
	{MerchantID: "MERCH-018", BusinessName: "Gaming Zone", Status: models.MerchantStatusActive, Tier: models.TierEnterprise},
	{MerchantID: "MERCH-019", BusinessName: "Pharmacy Plus", Status: models.MerchantStatusActive, Tier: models.TierStarter},
	{MerchantID: "MERCH-020", BusinessName: "Wine Cellar", Status: models.MerchantStatusActive, Tier: models.TierGrowth},
}

var (
	banks      = []string{"BBVA", "Santander", "Banorte", "HSBC", "Citibanamex", "Scotiabank", "Inbursa", "BanRegio"}
	cardBrands = []string{"Visa", "Mastercard", "Amex"}
	errorCodes = []string{"insufficient_funds", "card_declined", "expired_card", "fraud_suspected", "network_error", "invalid_card", "processing_error"}
	methods    = []string{models.MethodCard, models.MethodSPEI, models.MethodOXXO, models.MethodPayPal, models.MethodCrypto}
)

func feeRate(method string) float64 {
	switch method {
	case models.MethodCard:
		return 0.029
	case models.MethodSPEI:
		return 0.015
	case models.MethodOXXO:
		return 0.035
	default:
		return 0.025
	}
}

func refID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:13]))
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := repositories.DB

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	log.Println("Clearing existing data...")
	for _, table := range []string{"transactions", "withdrawals", "merchants", "alerts"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	log.Println("Creating merchants...")
	merchants := make([]models.Merchant, len(merchantCatalog))
	copy(merchants, merchantCatalog)
	for i := range merchants {
		merchants[i].Balance = float64(10000 + rng.Intn(1990001))
		merchants[i].TotalProcessed = float64(500000 + rng.Intn(49500001))
		merchants[i].CreatedAt = now.AddDate(0, 0, -(30 + rng.Intn(336)))
	}
	if err := db.Create(&merchants).Error; err != nil {
		log.Fatalf("Failed to create merchants: %v", err)
	}
	log.Printf("Created %d merchants", len(merchants))

	log.Println("Creating transactions...")
	transactions := make([]models.Transaction, 0, transactionCount)
	for i := 0; i < transactionCount; i++ {
		merchant := merchants[rng.Intn(len(merchants))]
		method := methods[rng.Intn(len(methods))]

		status := models.TxStatusCompleted
		switch roll := rng.Float64(); {
		case roll < 0.05:
			status = models.TxStatusFailed
		case roll < 0.07:
			status = models.TxStatusPending
		case roll < 0.08:
			status = models.TxStatusRefunded
		case roll < 0.09:
			status = models.TxStatusChargeback
		}

		amount := float64(50 + rng.Intn(49951))
		fee := float64(int(amount*feeRate(method)*100)) / 100
		processingTime := 200 + rng.Intn(3301)
		createdAt := now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour))))

		tx := models.Transaction{
			TransactionID:  refID("TXN"),
			MerchantID:     merchant.MerchantID,
			MerchantName:   merchant.BusinessName,
			Amount:         amount,
			Currency:       "MXN",
			Status:         status,
			PaymentMethod:  method,
			ProcessingTime: processingTime,
			Fee:            fee,
			NetAmount:      amount - fee,
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		}

		if method == models.MethodCard {
			tx.CardBrand = cardBrands[rng.Intn(len(cardBrands))]
		}
		if status == models.TxStatusFailed {
			tx.ErrorCode = errorCodes[rng.Intn(len(errorCodes))]
			tx.ErrorMessage = strings.ReplaceAll(tx.ErrorCode, "_", " ")
		}
		if status == models.TxStatusCompleted {
			completedAt := createdAt.Add(time.Duration(processingTime) * time.Millisecond)
			tx.CompletedAt = &completedAt
		}

		transactions = append(transactions, tx)
	}
	if err := db.CreateInBatches(&transactions, 200).Error; err != nil {
		log.Fatalf("Failed to create transactions: %v", err)
	}
	log.Printf("Created %d transactions", len(transactions))

	log.Println("Creating withdrawals...")
	wdStatuses := []string{
		models.WdStatusPending, models.WdStatusPending,
		models.WdStatusProcessing,
		models.WdStatusCompleted, models.WdStatusCompleted, models.WdStatusCompleted,
		models.WdStatusFailed, models.WdStatusCancelled,
	}
	withdrawals := make([]models.Withdrawal, 0, withdrawalCount)
	for i := 0; i < withdrawalCount; i++ {
		merchant := merchants[rng.Intn(len(merchants))]
		status := wdStatuses[rng.Intn(len(wdStatuses))]
		requestedAt := now.Add(-time.Duration(rng.Int63n(int64(14 * 24 * time.Hour))))

		wd := models.Withdrawal{
			WithdrawalID: refID("WDL"),
			MerchantID:   merchant.MerchantID,
			MerchantName: merchant.BusinessName,
			Amount:       float64(5000 + rng.Intn(995001)),
			Currency:     "MXN",
			Status:       status,
			BankAccount:  fmt.Sprintf("****%04d", 1000+rng.Intn(9000)),
			BankName:     banks[rng.Intn(len(banks))],
			RequestedAt:  requestedAt,
		}

		switch status {
		case models.WdStatusProcessing, models.WdStatusCompleted, models.WdStatusFailed:
			processedAt := requestedAt.Add(time.Duration(1+rng.Intn(24)) * time.Hour)
			wd.ProcessedAt = &processedAt
			if status == models.WdStatusCompleted {
				completedAt := processedAt.Add(time.Duration(1+rng.Intn(48)) * time.Hour)
				wd.CompletedAt = &completedAt
			}
		}

		withdrawals = append(withdrawals, wd)
	}
	if err := db.CreateInBatches(&withdrawals, 100).Error; err != nil {
		log.Fatalf("Failed to create withdrawals: %v", err)
	}
	log.Printf("Created %d withdrawals", len(withdrawals))

	log.Println("Creating alert thresholds...")
	thresholdRepo := repositories.NewThresholdRepository(db)
	if err := thresholdRepo.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("Failed to seed thresholds: %v", err)
	}

	log.Println("Seed completed successfully!")
}
