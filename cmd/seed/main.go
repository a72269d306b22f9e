package main

import (
	"time"

	"github.com/fuelflow/internal/config"
	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/logger"
	"github.com/fuelflow/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seeds demo accounts, reference data and the regulatory price catalogue.
// Safe to run repeatedly, existing rows are left alone.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedUsers()
	seedClients()
	seedTransportCompanies()
	seedDrivers()
	seedTrucks()
	seedRegulatoryPrices()

	stdLog.Printf("Seed finished")
}

func seedUsers() {
	stdLog := logger.StdLogger()

	type account struct {
		Username   string
		FullName   string
		Email      string
		Department string
		Role       string
	}
	accounts := []account{
		{Username: "GoranSM1", FullName: "Goran", Email: "goran@fuelflow.local", Department: constants.DepartmentSales, Role: "SM"},
		{Username: "MarkoSM2", FullName: "Marko", Email: "marko@fuelflow.local", Department: constants.DepartmentSales, Role: "SM"},
		{Username: "AnaManager1", FullName: "Ana", Email: "ana@fuelflow.local", Department: constants.DepartmentManagement, Role: "Manager"},
		{Username: "PetarWarehouse1", FullName: "Petar", Email: "petar@fuelflow.local", Department: constants.DepartmentWarehouse, Role: "Warehouse Staff"},
		{Username: "IvanTransport1", FullName: "Ivan", Email: "ivan@fuelflow.local", Department: constants.DepartmentTransport, Role: "Coordinator"},
		{Username: "MilenaFinance1", FullName: "Milena", Email: "milena@fuelflow.local", Department: constants.DepartmentFinance, Role: "Finance Staff"},
		{Username: "Admin", FullName: "Admin", Email: "admin@fuelflow.local", Department: constants.DepartmentAdmin, Role: "Admin"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("Failed to hash seed password: %v", err)
		return
	}

	for _, acc := range accounts {
		var existing models.User
		if err := models.DB.Where("username = ?", acc.Username).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", acc.Username)
			continue
		}
		user := models.User{
			Username:     acc.Username,
			PasswordHash: string(hash),
			FullName:     acc.FullName,
			Email:        acc.Email,
			Department:   acc.Department,
			Role:         acc.Role,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", acc.Username, err)
		} else {
			stdLog.Printf("Created user: %s (%s)", acc.Username, acc.Department)
		}
	}
}

func seedClients() {
	stdLog := logger.StdLogger()

	creditLimit := func(v float64) *models.Money {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
		return &m
	}
	clients := []models.Client{
		{
			ClientID:      "CL-001",
			ClientName:    "Makpetrol Retail DOO",
			Address:       "Bul. Partizanski Odredi 1, Skopje",
			ContactPerson: "Dragan Stojanov",
			Phone:         "+389 70 111 222",
			Email:         "orders@makpetrol-retail.mk",
			TaxID:         "MK4030991234567",
			AssignedSM:    "GoranSM1",
			PaymentTerms:  "Credit payment",
			CreditLimit:   creditLimit(2500000),
			Active:        true,
		},
		{
			ClientID:      "CL-002",
			ClientName:    "Agro Kombinat Tetovo",
			Address:       "Ilindenska bb, Tetovo",
			ContactPerson: "Arben Iseni",
			Phone:         "+389 71 333 444",
			Email:         "nabavka@agrokombinat.mk",
			TaxID:         "MK4028994765432",
			AssignedSM:    "MarkoSM2",
			PaymentTerms:  "Advanced payment",
			Active:        true,
		},
		{
			ClientID:      "CL-003",
			ClientName:    "Transkop Bitola AD",
			Address:       "Industriska zona bb, Bitola",
			ContactPerson: "Elena Petrovska",
			Phone:         "+389 75 555 666",
			Email:         "logistika@transkop.mk",
			TaxID:         "MK4002997112233",
			AssignedSM:    "GoranSM1",
			PaymentTerms:  "Paid Advance",
			CreditLimit:   creditLimit(800000),
			Active:        true,
		},
	}

	for _, client := range clients {
		var existing models.Client
		if err := models.DB.Where("client_id = ?", client.ClientID).First(&existing).Error; err == nil {
			stdLog.Printf("Client already exists: %s", client.ClientID)
			continue
		}
		if err := models.DB.Create(&client).Error; err != nil {
			stdLog.Printf("Failed to create client %s: %v", client.ClientID, err)
		} else {
			stdLog.Printf("Created client: %s (%s)", client.ClientID, client.ClientName)
		}
	}
}

func seedTransportCompanies() {
	stdLog := logger.StdLogger()

	ratePerLoad := func(v float64) *models.Money {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
		return &m
	}
	companies := []models.TransportCompany{
		{
			CompanyID:     "TC-001",
			CompanyName:   "Eurotrans Shped DOO",
			ContactPerson: "Zoran Mitrev",
			Phone:         "+389 70 777 888",
			Email:         "dispatch@eurotrans.mk",
			Address:       "Industriska 15, Skopje",
			RatePerLoad:   ratePerLoad(12000),
			PaymentTerms:  "Credit payment",
			Active:        true,
		},
		{
			CompanyID:     "TC-002",
			CompanyName:   "Vardar Logistik",
			ContactPerson: "Blagoja Ristov",
			Phone:         "+389 72 999 000",
			Email:         "office@vardarlogistik.mk",
			Address:       "Mageroski pat bb, Veles",
			RatePerLoad:   ratePerLoad(9500),
			PaymentTerms:  "Advanced payment",
			Active:        true,
		},
	}

	for _, company := range companies {
		var existing models.TransportCompany
		if err := models.DB.Where("company_id = ?", company.CompanyID).First(&existing).Error; err == nil {
			stdLog.Printf("Transport company already exists: %s", company.CompanyID)
			continue
		}
		if err := models.DB.Create(&company).Error; err != nil {
			stdLog.Printf("Failed to create transport company %s: %v", company.CompanyID, err)
		} else {
			stdLog.Printf("Created transport company: %s (%s)", company.CompanyID, company.CompanyName)
		}
	}
}

func seedDrivers() {
	stdLog := logger.StdLogger()

	licenseExpiry := time.Date(2028, 6, 30, 0, 0, 0, 0, time.UTC)
	drivers := []models.Driver{
		{
			DriverID:        "DR-001",
			DriverName:      "Nikola Trajkovski",
			LicenseNumber:   "B1234567",
			Phone:           "+389 70 123 456",
			LicenseExpiry:   &licenseExpiry,
			AssignedCompany: "Eurotrans Shped DOO",
			Active:          true,
		},
		{
			DriverID:        "DR-002",
			DriverName:      "Sasho Gjorgjiev",
			LicenseNumber:   "B7654321",
			Phone:           "+389 71 654 321",
			LicenseExpiry:   &licenseExpiry,
			AssignedCompany: "Vardar Logistik",
			Active:          true,
		},
	}

	for _, driver := range drivers {
		var existing models.Driver
		if err := models.DB.Where("driver_id = ?", driver.DriverID).First(&existing).Error; err == nil {
			stdLog.Printf("Driver already exists: %s", driver.DriverID)
			continue
		}
		if err := models.DB.Create(&driver).Error; err != nil {
			stdLog.Printf("Failed to create driver %s: %v", driver.DriverID, err)
		} else {
			stdLog.Printf("Created driver: %s (%s)", driver.DriverID, driver.DriverName)
		}
	}
}

func seedTrucks() {
	stdLog := logger.StdLogger()

	capacity := func(v float64) *models.Money {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
		return &m
	}
	trucks := []models.Truck{
		{
			TruckID:      "TR-001",
			PlateNumber:  "SK-1234-AB",
			TruckType:    "Tanker",
			Capacity:     capacity(30000),
			CapacityUnit: "L",
			Active:       true,
		},
		{
			TruckID:      "TR-002",
			PlateNumber:  "TE-5678-CD",
			TruckType:    "Tanker",
			Capacity:     capacity(18000),
			CapacityUnit: "L",
			Active:       true,
		},
	}

	for _, truck := range trucks {
		var existing models.Truck
		if err := models.DB.Where("truck_id = ?", truck.TruckID).First(&existing).Error; err == nil {
			stdLog.Printf("Truck already exists: %s", truck.TruckID)
			continue
		}
		if err := models.DB.Create(&truck).Error; err != nil {
			stdLog.Printf("Failed to create truck %s: %v", truck.TruckID, err)
		} else {
			stdLog.Printf("Created truck: %s (%s)", truck.TruckID, truck.PlateNumber)
		}
	}
}

func seedRegulatoryPrices() {
	stdLog := logger.StdLogger()

	basePrices := map[string]float64{
		"Eurodiesel":      71.50,
		"Eurosuper 95 BS": 77.00,
		"GeForce 95 Plus": 79.50,
		"Extreme Diesel":  73.00,
		"Ekstra Lesno":    68.50,
		"Mazut":           42.00,
	}
	unitFor := func(productType string) string {
		if productType == "Mazut" {
			return "Kg"
		}
		return "L"
	}

	now := time.Now().UTC()
	for _, productType := range constants.ProductTypes {
		var existing models.RegulatoryPrice
		err := models.DB.Where("product_type = ? AND effective_to IS NULL", productType).First(&existing).Error
		if err == nil {
			stdLog.Printf("Open price already exists: %s", productType)
			continue
		}
		price := models.RegulatoryPrice{
			ProductType:   productType,
			BasePrice:     models.NewMoneyFromDecimal(decimal.NewFromFloat(basePrices[productType])),
			Unit:          unitFor(productType),
			EffectiveFrom: now,
		}
		if err := models.DB.Create(&price).Error; err != nil {
			stdLog.Printf("Failed to create regulatory price %s: %v", productType, err)
		} else {
			stdLog.Printf("Created regulatory price: %s %s/%s", productType, price.BasePrice.String(), price.Unit)
		}
	}
}
