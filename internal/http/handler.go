package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Zandino/Deltapp/internal/excel"
	"github.com/Zandino/Deltapp/internal/geocode"
	"github.com/Zandino/Deltapp/internal/http/middleware"
	"github.com/Zandino/Deltapp/internal/model"
	"github.com/Zandino/Deltapp/internal/pdf"
	"github.com/Zandino/Deltapp/internal/service"
	"github.com/Zandino/Deltapp/internal/tracking"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

type Handler struct {
	interventions *service.InterventionService
	projects      *service.ProjectService
	clients       *service.ClientService
	technicians   *service.TechnicianService
	contracts     *service.ContractService
	prices        *service.PriceService
	accounting    *service.AccountingService
	documents     *service.DocumentService
	users         *service.UserService
	tracking      *tracking.Client
	geocoder      *geocode.Client
	excel         *excel.Generator
	pdf           *pdf.Generator
	issuer        TokenIssuer
	log           zerolog.Logger
}

type HandlerDeps struct {
	Interventions *service.InterventionService
	Projects      *service.ProjectService
	Clients       *service.ClientService
	Technicians   *service.TechnicianService
	Contracts     *service.ContractService
	Prices        *service.PriceService
	Accounting    *service.AccountingService
	Documents     *service.DocumentService
	Users         *service.UserService
	Tracking      *tracking.Client
	Geocoder      *geocode.Client
	Excel         *excel.Generator
	PDF           *pdf.Generator
	Issuer        TokenIssuer
	Log           zerolog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		interventions: deps.Interventions,
		projects:      deps.Projects,
		clients:       deps.Clients,
		technicians:   deps.Technicians,
		contracts:     deps.Contracts,
		prices:        deps.Prices,
		accounting:    deps.Accounting,
		documents:     deps.Documents,
		users:         deps.Users,
		tracking:      deps.Tracking,
		geocoder:      deps.Geocoder,
		excel:         deps.Excel,
		pdf:           deps.PDF,
		issuer:        deps.Issuer,
		log:           deps.Log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/api/v1/auth/login", h.login)

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)

	protected.POST("/auth/reset-password", h.resetPassword)

	interventions := protected.Group("/interventions")
	interventions.GET("", h.listInterventions)
	interventions.POST("", h.createIntervention)
	interventions.GET("/export", h.exportInterventions)
	interventions.GET("/:id", h.getIntervention)
	interventions.PUT("/:id", h.updateIntervention)
	interventions.DELETE("/:id", h.deleteIntervention)
	interventions.POST("/:id/technicians", h.assignTechnicians)
	interventions.POST("/:id/expenses", h.recordExpense)
	interventions.POST("/:id/close", h.closeIntervention)
	interventions.POST("/:id/duplicate", h.duplicateIntervention)
	interventions.POST("/:id/tracking-numbers", h.addTrackingNumber)
	interventions.DELETE("/:id/tracking-numbers/:number", h.removeTrackingNumber)
	interventions.GET("/:id/report.pdf", h.interventionReport)

	projects := protected.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.POST("/import", h.importProjects)
	projects.GET("/:id", h.getProject)
	projects.PUT("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.POST("/:id/duplicate", h.duplicateProject)

	clients := protected.Group("/clients")
	clients.GET("", h.listClients)
	clients.POST("", h.createClient)
	clients.GET("/export", h.exportClients)
	clients.POST("/import", h.importClients)
	clients.GET("/:id", h.getClient)
	clients.PUT("/:id", h.updateClient)
	clients.DELETE("/:id", h.deleteClient)

	technicians := protected.Group("/technicians")
	technicians.GET("", h.listTechnicians)
	technicians.POST("", h.createTechnician)
	technicians.PUT("/:id", h.updateTechnician)
	technicians.DELETE("/:id", h.deleteTechnician)

	contracts := protected.Group("/contracts")
	contracts.GET("", h.listContracts)
	contracts.POST("", h.createContract)
	contracts.POST("/import", h.importContracts)
	contracts.GET("/:id", h.getContract)
	contracts.PUT("/:id", h.updateContract)
	contracts.DELETE("/:id", h.deleteContract)
	contracts.POST("/:id/services", h.addContractService)
	contracts.PUT("/:id/services/:serviceId", h.updateContractService)
	contracts.DELETE("/:id/services/:serviceId", h.deleteContractService)

	prices := protected.Group("/prices")
	prices.GET("", h.listPrices)
	prices.POST("", h.createPrice)
	prices.GET("/export", h.exportPrices)
	prices.POST("/import", h.importPrices)
	prices.PUT("/:id", h.updatePrice)
	prices.DELETE("/:id", h.deletePrice)

	invoices := protected.Group("/invoices")
	invoices.GET("", h.listInvoices)
	invoices.POST("", h.createInvoice)
	invoices.PUT("/:id/status", h.updateInvoiceStatus)
	invoices.DELETE("/:id", h.deleteInvoice)
	protected.GET("/accounting/stats", h.accountingStats)

	documents := protected.Group("/documents")
	documents.GET("", h.listDocuments)
	documents.POST("", h.createDocument)
	documents.PUT("/:id", h.updateDocument)
	documents.DELETE("/:id", h.deleteDocument)

	users := protected.Group("/users")
	users.GET("", h.adminOnly(h.listUsers))
	users.POST("", h.adminOnly(h.createUser))
	users.PUT("/:id", h.adminOnly(h.updateUser))
	users.DELETE("/:id", h.adminOnly(h.deleteUser))

	protected.POST("/tracking/validate", h.validateTracking)
	protected.GET("/tracking/:number/status", h.trackingStatus)
	protected.GET("/geocode", h.geocodeAddress)
}

// adminOnly guards user management endpoints.
func (h *Handler) adminOnly(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}
		if !principal.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		next(c)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.handleError(c, err)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// resetPassword changes the signed-in user's own password.
func (h *Handler) resetPassword(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), principal.Email, req.CurrentPassword, req.NewPassword); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listInterventions(c *gin.Context) {
	items, err := h.interventions.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createIntervention(c *gin.Context) {
	var input service.CreateInterventionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.interventions.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getIntervention(c *gin.Context) {
	found, err := h.interventions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) updateIntervention(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.interventions.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteIntervention(c *gin.Context) {
	if err := h.interventions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) assignTechnicians(c *gin.Context) {
	var input service.AssignTechniciansInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.interventions.AssignTechnicians(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) recordExpense(c *gin.Context) {
	var expense model.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.interventions.RecordExpense(c.Request.Context(), c.Param("id"), expense)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) closeIntervention(c *gin.Context) {
	var closure model.ClosureData
	if err := c.ShouldBindJSON(&closure); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.interventions.Close(c.Request.Context(), c.Param("id"), closure)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) duplicateIntervention(c *gin.Context) {
	duplicated, err := h.interventions.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, duplicated)
}

type trackingNumberRequest struct {
	Number string `json:"number" binding:"required"`
}

func (h *Handler) addTrackingNumber(c *gin.Context) {
	var req trackingNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.interventions.AddTrackingNumber(c.Request.Context(), c.Param("id"), req.Number)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) removeTrackingNumber(c *gin.Context) {
	updated, err := h.interventions.RemoveTrackingNumber(c.Request.Context(), c.Param("id"), c.Param("number"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) interventionReport(c *gin.Context) {
	found, err := h.interventions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.pdf.InterventionReport(*found)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", found.ID+".pdf"))
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) exportInterventions(c *gin.Context) {
	items, err := h.interventions.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	headers := []string{"ID", "Titre", "Client", "Site", "Date", "Heure", "Statut", "Prix achat", "Prix vente", "Total frais", "Montant total"}
	rows := make([][]interface{}, 0, len(items))
	for _, i := range items {
		rows = append(rows, []interface{}{
			i.ID, i.Title, i.ClientName, i.SiteName, i.Date, i.Time, string(i.Status),
			float64(i.BuyPrice), float64(i.SellPrice), float64(i.TotalExpenses), float64(i.TotalAmount),
		})
	}
	h.sendExcel(c, "interventions.xlsx", "Interventions", headers, rows)
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createProject(c *gin.Context) {
	var input service.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.projects.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getProject(c *gin.Context) {
	found, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) updateProject(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.projects.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type duplicateProjectRequest struct {
	StartDate string `json:"startDate" binding:"required"`
}

func (h *Handler) duplicateProject(c *gin.Context) {
	var req duplicateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	duplicated, err := h.projects.Duplicate(c.Request.Context(), c.Param("id"), req.StartDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, duplicated)
}

func (h *Handler) importProjects(c *gin.Context) {
	h.importFromExcel(c, h.projects.Import)
}

func (h *Handler) listClients(c *gin.Context) {
	items, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createClient(c *gin.Context) {
	var input service.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getClient(c *gin.Context) {
	found, err := h.clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) updateClient(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.clients.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteClient(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportClients(c *gin.Context) {
	items, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	headers := []string{"Nom", "Société", "Email", "Téléphone", "Adresse", "Ville", "Code postal"}
	rows := make([][]interface{}, 0, len(items))
	for _, client := range items {
		rows = append(rows, []interface{}{
			client.Name, client.Company, client.Email, client.Phone,
			client.Address, client.City, client.PostalCode,
		})
	}
	h.sendExcel(c, "clients.xlsx", "Clients", headers, rows)
}

func (h *Handler) importClients(c *gin.Context) {
	h.importFromExcel(c, h.clients.Import)
}

func (h *Handler) listTechnicians(c *gin.Context) {
	items, err := h.technicians.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createTechnician(c *gin.Context) {
	var input service.CreateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.technicians.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateTechnician(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.technicians.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteTechnician(c *gin.Context) {
	if err := h.technicians.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listContracts(c *gin.Context) {
	items, err := h.contracts.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createContract(c *gin.Context) {
	var input service.CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getContract(c *gin.Context) {
	found, err := h.contracts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) updateContract(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.contracts.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteContract(c *gin.Context) {
	if err := h.contracts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addContractService(c *gin.Context) {
	var input service.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.contracts.AddService(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateContractService(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.contracts.UpdateService(c.Request.Context(), c.Param("id"), c.Param("serviceId"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteContractService(c *gin.Context) {
	updated, err := h.contracts.DeleteService(c.Request.Context(), c.Param("id"), c.Param("serviceId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) importContracts(c *gin.Context) {
	h.importFromExcel(c, h.contracts.Import)
}

func (h *Handler) listPrices(c *gin.Context) {
	items, err := h.prices.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createPrice(c *gin.Context) {
	var input service.CreatePriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.prices.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updatePrice(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.prices.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deletePrice(c *gin.Context) {
	if err := h.prices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportPrices(c *gin.Context) {
	items, err := h.prices.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	headers := []string{"Client", "Contrat", "Type de prestation", "Description", "Prix achat", "Prix vente", "Unité"}
	rows := make([][]interface{}, 0, len(items))
	for _, price := range items {
		rows = append(rows, []interface{}{
			price.ClientName, price.ContractName, price.ServiceType, price.Description,
			float64(price.BuyPrice), float64(price.SellPrice), string(price.Unit),
		})
	}
	h.sendExcel(c, "tarifs.xlsx", "Tarifs", headers, rows)
}

func (h *Handler) importPrices(c *gin.Context) {
	h.importFromExcel(c, h.prices.Import)
}

func (h *Handler) listInvoices(c *gin.Context) {
	items, err := h.accounting.ListInvoices(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createInvoice(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.accounting.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type invoiceStatusRequest struct {
	Status     model.InvoiceStatus `json:"status" binding:"required"`
	Attachment string              `json:"attachment"`
}

func (h *Handler) updateInvoiceStatus(c *gin.Context) {
	var req invoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.accounting.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), req.Status, req.Attachment)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	if err := h.accounting.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) accountingStats(c *gin.Context) {
	stats, err := h.accounting.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) listDocuments(c *gin.Context) {
	items, err := h.documents.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createDocument(c *gin.Context) {
	var input service.CreateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.documents.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateDocument(c *gin.Context) {
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.documents.Update(c.Request.Context(), c.Param("id"), json.RawMessage(patch))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteDocument(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listUsers(c *gin.Context) {
	items, err := h.users.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createUser(c *gin.Context) {
	var input service.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.users.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateUser(c *gin.Context) {
	var input service.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.users.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) validateTracking(c *gin.Context) {
	var req trackingNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.tracking.Validate(c.Request.Context(), req.Number)
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", service.ErrExternal, err))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) trackingStatus(c *gin.Context) {
	carrier := 0
	if raw := c.Query("carrier"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid carrier"})
			return
		}
		carrier = parsed
	}
	status, err := h.tracking.FetchStatus(c.Request.Context(), c.Param("number"), carrier)
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", service.ErrExternal, err))
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) geocodeAddress(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	location, err := h.geocoder.Geocode(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", service.ErrExternal, err))
		return
	}
	if location == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "location": location})
}

func (h *Handler) sendExcel(c *gin.Context, filename, sheet string, headers []string, rows [][]interface{}) {
	content, err := h.excel.Generate(sheet, headers, rows)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excelContentType, content)
}

func (h *Handler) importFromExcel(c *gin.Context, importer func(ctx context.Context, rows []map[string]string) (*service.ImportReport, error)) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	rows, err := h.excel.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not parse workbook"})
		return
	}

	report, err := importer(c.Request.Context(), rows)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExternal):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
