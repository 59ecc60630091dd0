package router

import (
	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/interfaces/http/handler"
)

// Handlers are the endpoint groups mounted on the API
type Handlers struct {
	Auth          *handler.AuthHandler
	Organizations *handler.OrganizationHandler
	Clients       *handler.ClientHandler
	Suppliers     *handler.SupplierHandler
	Products      *handler.ProductHandler
	Categories    *handler.CategoryHandler
	Companies     *handler.CompanyHandler

	ClientContacts    *handler.ContactHandler
	SupplierContacts  *handler.ContactHandler
	ClientAddresses   *handler.AddressHandler
	SupplierAddresses *handler.AddressHandler
	CompanyAddresses  *handler.AddressHandler
}

// Guards are the middleware separating public from authenticated routes
type Guards struct {
	// RequireAuth rejects requests without a valid access token
	RequireAuth gin.HandlerFunc
	// CredentialLimit throttles credential endpoints; nil disables it
	CredentialLimit gin.HandlerFunc
}

// APIGroups builds the /api/v1 route groups
func APIGroups(h Handlers, g Guards) []RouteRegistrar {
	public := NewDomainGroup("auth", "/auth")
	if g.CredentialLimit != nil {
		public.Use(g.CredentialLimit)
	}
	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)
	public.POST("/refresh", h.Auth.Refresh)

	session := NewDomainGroup("session", "/auth").Use(g.RequireAuth)
	session.GET("/me", h.Auth.Me)
	session.POST("/logout", h.Auth.Logout)
	session.PUT("/password", h.Auth.ChangePassword)

	orgs := NewDomainGroup("organizations", "/organizations").Use(g.RequireAuth)
	orgs.GET("", h.Organizations.List)
	orgs.POST("", h.Organizations.Create)
	orgs.GET("/:orgId", h.Organizations.Get)
	orgs.PUT("/:orgId", h.Organizations.Update)
	orgs.DELETE("/:orgId", h.Organizations.Delete)
	orgs.POST("/:orgId/archive", h.Organizations.Archive)
	orgs.POST("/:orgId/restore", h.Organizations.Restore)
	orgs.GET("/:orgId/overview", h.Organizations.Overview)
	orgs.GET("/:orgId/activity", h.Organizations.Activity)
	orgs.GET("/:orgId/members", h.Organizations.ListMembers)
	orgs.POST("/:orgId/members", h.Organizations.AddMember)
	orgs.PUT("/:orgId/members/:userId", h.Organizations.ChangeMemberRole)
	orgs.DELETE("/:orgId/members/:userId", h.Organizations.RemoveMember)

	clients := lifecycleRoutes(orgs, "clients", h.Clients)
	contactRoutes(clients, h.ClientContacts)
	addressRoutes(clients, h.ClientAddresses)

	suppliers := lifecycleRoutes(orgs, "suppliers", h.Suppliers)
	contactRoutes(suppliers, h.SupplierContacts)
	addressRoutes(suppliers, h.SupplierAddresses)

	lifecycleRoutes(orgs, "products", h.Products)

	categories := orgs.Group("product-categories", "/:orgId/product-categories")
	categories.GET("", h.Categories.List)
	categories.POST("", h.Categories.Create)
	categories.GET("/tree", h.Categories.Tree)
	categories.GET("/:id", h.Categories.Get)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)
	categories.POST("/:id/move", h.Categories.Move)
	categories.POST("/:id/archive", h.Categories.Archive)
	categories.POST("/:id/restore", h.Categories.Restore)

	companies := orgs.Group("companies", "/:orgId/companies")
	companies.GET("", h.Companies.List)
	companies.POST("", h.Companies.Create)
	companies.GET("/:id", h.Companies.Get)
	companies.PUT("/:id", h.Companies.Update)
	companies.DELETE("/:id", h.Companies.Delete)
	companies.POST("/:id/main", h.Companies.SetMain)
	companies.POST("/:id/logo/upload", h.Companies.RequestLogoUpload)
	companies.PUT("/:id/logo", h.Companies.ConfirmLogo)
	companies.POST("/:id/archive", h.Companies.Archive)
	companies.POST("/:id/restore", h.Companies.Restore)
	addressRoutes(companies, h.CompanyAddresses)

	return []RouteRegistrar{public, session, orgs}
}

// lifecycleHandler is satisfied by every handler.LifecycleHandler instantiation
type lifecycleHandler interface {
	Create(*gin.Context)
	Get(*gin.Context)
	List(*gin.Context)
	Update(*gin.Context)
	ChangeStatus(*gin.Context)
	Archive(*gin.Context)
	Restore(*gin.Context)
	Delete(*gin.Context)
	Transitions(*gin.Context)
}

func lifecycleRoutes(orgs *DomainGroup, name string, h lifecycleHandler) *DomainGroup {
	g := orgs.Group(name, "/:orgId/"+name)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/transitions", h.Transitions)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/status", h.ChangeStatus)
	g.POST("/:id/archive", h.Archive)
	g.POST("/:id/restore", h.Restore)
	return g
}

func contactRoutes(owner *DomainGroup, h *handler.ContactHandler) {
	g := owner.Group("contacts", "/:id/contacts")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:contactId", h.Update)
	g.DELETE("/:contactId", h.Delete)
	g.POST("/:contactId/primary", h.SetPrimary)
}

func addressRoutes(owner *DomainGroup, h *handler.AddressHandler) {
	g := owner.Group("addresses", "/:id/addresses")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:addressId", h.Update)
	g.DELETE("/:addressId", h.Delete)
	g.POST("/:addressId/default", h.SetDefault)
}
