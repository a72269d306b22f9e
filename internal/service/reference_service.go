package service

import (
	"fmt"
	"strings"

	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"
)

// ReferenceService handles the reference entities orders point at: clients,
// drivers, trucks and transport companies. Reference rows are deactivated,
// never deleted, so historic orders keep resolving.
type ReferenceService struct {
	clientRepo  repository.ClientRepository
	driverRepo  repository.DriverRepository
	truckRepo   repository.TruckRepository
	companyRepo repository.TransportCompanyRepository
}

// NewReferenceService creates the reference service.
func NewReferenceService(clientRepo repository.ClientRepository, driverRepo repository.DriverRepository, truckRepo repository.TruckRepository, companyRepo repository.TransportCompanyRepository) *ReferenceService {
	return &ReferenceService{
		clientRepo:  clientRepo,
		driverRepo:  driverRepo,
		truckRepo:   truckRepo,
		companyRepo: companyRepo,
	}
}

// CreateClient inserts a client.
func (s *ReferenceService) CreateClient(client *models.Client) error {
	if strings.TrimSpace(client.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", workflow.ErrValidation)
	}
	if strings.TrimSpace(client.ClientID) == "" {
		return fmt.Errorf("%w: client id is required", workflow.ErrValidation)
	}
	client.Active = true
	return s.clientRepo.Create(client)
}

// GetClient fetches a client.
func (s *ReferenceService) GetClient(id uint) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	return client, nil
}

// ListClients fetches a client page.
func (s *ReferenceService) ListClients(filter repository.ReferenceListFilter) ([]models.Client, int64, error) {
	return s.clientRepo.List(filter)
}

// UpdateClient saves a client.
func (s *ReferenceService) UpdateClient(client *models.Client) error {
	existing, err := s.clientRepo.GetByID(client.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.clientRepo.Update(client)
}

// DeactivateClient hides a client from new orders.
func (s *ReferenceService) DeactivateClient(id uint) error {
	return s.setClientActive(id, false)
}

// ReactivateClient re-enables a client for new orders.
func (s *ReferenceService) ReactivateClient(id uint) error {
	return s.setClientActive(id, true)
}

func (s *ReferenceService) setClientActive(id uint, active bool) error {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrNotFound
	}
	return s.clientRepo.SetActive(id, active)
}

// CreateDriver inserts a driver.
func (s *ReferenceService) CreateDriver(driver *models.Driver) error {
	if strings.TrimSpace(driver.DriverName) == "" {
		return fmt.Errorf("%w: driver name is required", workflow.ErrValidation)
	}
	if strings.TrimSpace(driver.LicenseNumber) == "" {
		return fmt.Errorf("%w: license number is required", workflow.ErrValidation)
	}
	driver.Active = true
	return s.driverRepo.Create(driver)
}

// GetDriver fetches a driver.
func (s *ReferenceService) GetDriver(id uint) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	return driver, nil
}

// ListDrivers fetches a driver page.
func (s *ReferenceService) ListDrivers(filter repository.ReferenceListFilter) ([]models.Driver, int64, error) {
	return s.driverRepo.List(filter)
}

// UpdateDriver saves a driver.
func (s *ReferenceService) UpdateDriver(driver *models.Driver) error {
	existing, err := s.driverRepo.GetByID(driver.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.driverRepo.Update(driver)
}

// SetDriverActive toggles a driver.
func (s *ReferenceService) SetDriverActive(id uint, active bool) error {
	driver, err := s.driverRepo.GetByID(id)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrNotFound
	}
	return s.driverRepo.SetActive(id, active)
}

// CreateTruck inserts a truck.
func (s *ReferenceService) CreateTruck(truck *models.Truck) error {
	if strings.TrimSpace(truck.PlateNumber) == "" {
		return fmt.Errorf("%w: plate number is required", workflow.ErrValidation)
	}
	truck.Active = true
	return s.truckRepo.Create(truck)
}

// GetTruck fetches a truck.
func (s *ReferenceService) GetTruck(id uint) (*models.Truck, error) {
	truck, err := s.truckRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if truck == nil {
		return nil, ErrNotFound
	}
	return truck, nil
}

// ListTrucks fetches a truck page.
func (s *ReferenceService) ListTrucks(filter repository.ReferenceListFilter) ([]models.Truck, int64, error) {
	return s.truckRepo.List(filter)
}

// UpdateTruck saves a truck.
func (s *ReferenceService) UpdateTruck(truck *models.Truck) error {
	existing, err := s.truckRepo.GetByID(truck.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.truckRepo.Update(truck)
}

// SetTruckActive toggles a truck.
func (s *ReferenceService) SetTruckActive(id uint, active bool) error {
	truck, err := s.truckRepo.GetByID(id)
	if err != nil {
		return err
	}
	if truck == nil {
		return ErrNotFound
	}
	return s.truckRepo.SetActive(id, active)
}

// CreateTransportCompany inserts a transport company.
func (s *ReferenceService) CreateTransportCompany(company *models.TransportCompany) error {
	if strings.TrimSpace(company.CompanyName) == "" {
		return fmt.Errorf("%w: company name is required", workflow.ErrValidation)
	}
	company.Active = true
	return s.companyRepo.Create(company)
}

// GetTransportCompany fetches a transport company.
func (s *ReferenceService) GetTransportCompany(id uint) (*models.TransportCompany, error) {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// ListTransportCompanies fetches a transport company page.
func (s *ReferenceService) ListTransportCompanies(filter repository.ReferenceListFilter) ([]models.TransportCompany, int64, error) {
	return s.companyRepo.List(filter)
}

// UpdateTransportCompany saves a transport company.
func (s *ReferenceService) UpdateTransportCompany(company *models.TransportCompany) error {
	existing, err := s.companyRepo.GetByID(company.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.companyRepo.Update(company)
}

// SetTransportCompanyActive toggles a transport company.
func (s *ReferenceService) SetTransportCompanyActive(id uint, active bool) error {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrNotFound
	}
	return s.companyRepo.SetActive(id, active)
}
