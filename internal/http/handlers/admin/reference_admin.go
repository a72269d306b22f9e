package admin

import (
	"strings"
	"time"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) adminReferenceFilter(c *gin.Context) repository.ReferenceListFilter {
	page, pageSize := pageParams(c)
	return repository.ReferenceListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: c.Query("only_active") == "true",
	}
}

// SetActiveRequest toggles a reference row.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ClientRequest is the client create/update payload.
type ClientRequest struct {
	ClientID      string        `json:"client_id"`
	ClientName    string        `json:"client_name" binding:"required"`
	Address       string        `json:"address"`
	ContactPerson string        `json:"contact_person"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	TaxID         string        `json:"tax_id"`
	AssignedSM    string        `json:"assigned_sm"`
	PaymentTerms  string        `json:"payment_terms"`
	CreditLimit   *models.Money `json:"credit_limit"`
	Notes         string        `json:"notes"`
}

func (r *ClientRequest) apply(client *models.Client) {
	if r.ClientID != "" {
		client.ClientID = strings.TrimSpace(r.ClientID)
	}
	client.ClientName = strings.TrimSpace(r.ClientName)
	client.Address = r.Address
	client.ContactPerson = r.ContactPerson
	client.Phone = r.Phone
	client.Email = r.Email
	client.TaxID = r.TaxID
	client.AssignedSM = r.AssignedSM
	client.PaymentTerms = r.PaymentTerms
	client.CreditLimit = r.CreditLimit
	client.Notes = r.Notes
}

// CreateClient adds a client.
func (h *Handler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	client := &models.Client{Active: true}
	req.apply(client)
	if err := h.ReferenceService.CreateClient(client); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, client)
}

// ListClientsAdmin lists clients including inactive ones.
func (h *Handler) ListClientsAdmin(c *gin.Context) {
	filter := h.adminReferenceFilter(c)
	clients, total, err := h.ReferenceService.ListClients(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "client fetch failed", err)
		return
	}
	response.SuccessWithPage(c, clients, response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, filter.PageSize),
	})
}

// UpdateClient edits a client.
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	client, err := h.ReferenceService.GetClient(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	req.apply(client)
	if err := h.ReferenceService.UpdateClient(client); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, client)
}

// SetClientActive deactivates or reactivates a client. Inactive clients stay
// attached to their historical orders but reject new ones.
func (h *Handler) SetClientActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	var err error
	if *req.Active {
		err = h.ReferenceService.ReactivateClient(id)
	} else {
		err = h.ReferenceService.DeactivateClient(id)
	}
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "client updated", gin.H{"active": *req.Active})
}

// DriverRequest is the driver create/update payload.
type DriverRequest struct {
	DriverID        string     `json:"driver_id"`
	DriverName      string     `json:"driver_name" binding:"required"`
	LicenseNumber   string     `json:"license_number"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	LicenseExpiry   *time.Time `json:"license_expiry"`
	AssignedCompany string     `json:"assigned_company"`
}

func (r *DriverRequest) apply(driver *models.Driver) {
	if r.DriverID != "" {
		driver.DriverID = strings.TrimSpace(r.DriverID)
	}
	driver.DriverName = strings.TrimSpace(r.DriverName)
	driver.LicenseNumber = r.LicenseNumber
	driver.Phone = r.Phone
	driver.Email = r.Email
	driver.LicenseExpiry = r.LicenseExpiry
	driver.AssignedCompany = r.AssignedCompany
}

// CreateDriver adds a driver.
func (h *Handler) CreateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	driver := &models.Driver{Active: true}
	req.apply(driver)
	if err := h.ReferenceService.CreateDriver(driver); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, driver)
}

// ListDriversAdmin lists drivers including inactive ones.
func (h *Handler) ListDriversAdmin(c *gin.Context) {
	filter := h.adminReferenceFilter(c)
	drivers, total, err := h.ReferenceService.ListDrivers(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "driver fetch failed", err)
		return
	}
	response.SuccessWithPage(c, drivers, response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, filter.PageSize),
	})
}

// UpdateDriver edits a driver.
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	driver, err := h.ReferenceService.GetDriver(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	req.apply(driver)
	if err := h.ReferenceService.UpdateDriver(driver); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, driver)
}

// SetDriverActive toggles a driver.
func (h *Handler) SetDriverActive(c *gin.Context) {
	h.setActive(c, h.ReferenceService.SetDriverActive)
}

// TruckRequest is the truck create/update payload.
type TruckRequest struct {
	TruckID            string        `json:"truck_id"`
	PlateNumber        string        `json:"plate_number" binding:"required"`
	TruckType          string        `json:"truck_type"`
	Capacity           *models.Money `json:"capacity"`
	CapacityUnit       string        `json:"capacity_unit"`
	AssignedDriverID   *uint         `json:"assigned_driver_id"`
	TransportCompanyID *uint         `json:"transport_company_id"`
}

func (r *TruckRequest) apply(truck *models.Truck) {
	if r.TruckID != "" {
		truck.TruckID = strings.TrimSpace(r.TruckID)
	}
	truck.PlateNumber = strings.TrimSpace(r.PlateNumber)
	truck.TruckType = r.TruckType
	truck.Capacity = r.Capacity
	truck.CapacityUnit = r.CapacityUnit
	truck.AssignedDriverID = r.AssignedDriverID
	truck.TransportCompanyID = r.TransportCompanyID
}

// CreateTruck adds a truck.
func (h *Handler) CreateTruck(c *gin.Context) {
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	truck := &models.Truck{Active: true}
	req.apply(truck)
	if err := h.ReferenceService.CreateTruck(truck); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, truck)
}

// ListTrucksAdmin lists trucks including inactive ones.
func (h *Handler) ListTrucksAdmin(c *gin.Context) {
	filter := h.adminReferenceFilter(c)
	trucks, total, err := h.ReferenceService.ListTrucks(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "truck fetch failed", err)
		return
	}
	response.SuccessWithPage(c, trucks, response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, filter.PageSize),
	})
}

// UpdateTruck edits a truck.
func (h *Handler) UpdateTruck(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	truck, err := h.ReferenceService.GetTruck(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	req.apply(truck)
	if err := h.ReferenceService.UpdateTruck(truck); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, truck)
}

// SetTruckActive toggles a truck.
func (h *Handler) SetTruckActive(c *gin.Context) {
	h.setActive(c, h.ReferenceService.SetTruckActive)
}

// TransportCompanyRequest is the transport company create/update payload.
type TransportCompanyRequest struct {
	CompanyID     string        `json:"company_id"`
	CompanyName   string        `json:"company_name" binding:"required"`
	ContactPerson string        `json:"contact_person"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	RatePerKM     *models.Money `json:"rate_per_km"`
	RatePerLoad   *models.Money `json:"rate_per_load"`
	PaymentTerms  string        `json:"payment_terms"`
	Notes         string        `json:"notes"`
}

func (r *TransportCompanyRequest) apply(company *models.TransportCompany) {
	if r.CompanyID != "" {
		company.CompanyID = strings.TrimSpace(r.CompanyID)
	}
	company.CompanyName = strings.TrimSpace(r.CompanyName)
	company.ContactPerson = r.ContactPerson
	company.Phone = r.Phone
	company.Email = r.Email
	company.Address = r.Address
	company.RatePerKM = r.RatePerKM
	company.RatePerLoad = r.RatePerLoad
	company.PaymentTerms = r.PaymentTerms
	company.Notes = r.Notes
}

// CreateTransportCompany adds a transport company.
func (h *Handler) CreateTransportCompany(c *gin.Context) {
	var req TransportCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	company := &models.TransportCompany{Active: true}
	req.apply(company)
	if err := h.ReferenceService.CreateTransportCompany(company); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, company)
}

// ListTransportCompaniesAdmin lists transport companies including inactive
// ones.
func (h *Handler) ListTransportCompaniesAdmin(c *gin.Context) {
	filter := h.adminReferenceFilter(c)
	companies, total, err := h.ReferenceService.ListTransportCompanies(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "transport company fetch failed", err)
		return
	}
	response.SuccessWithPage(c, companies, response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, filter.PageSize),
	})
}

// UpdateTransportCompany edits a transport company.
func (h *Handler) UpdateTransportCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TransportCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	company, err := h.ReferenceService.GetTransportCompany(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	req.apply(company)
	if err := h.ReferenceService.UpdateTransportCompany(company); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, company)
}

// SetTransportCompanyActive toggles a transport company.
func (h *Handler) SetTransportCompanyActive(c *gin.Context) {
	h.setActive(c, h.ReferenceService.SetTransportCompanyActive)
}

func (h *Handler) setActive(c *gin.Context, set func(uint, bool) error) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := set(id, *req.Active); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "updated", gin.H{"active": *req.Active})
}
