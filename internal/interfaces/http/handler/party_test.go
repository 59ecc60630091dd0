package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	partnerapp "github.com/orgdesk/backend/internal/application/partner"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddressHandler_OwnerFromRoute(t *testing.T) {
	orgID, ownerID, addrID := uuid.New(), uuid.New(), uuid.New()
	svc := new(MockAddressAPI)

	r := gin.New()
	clients := NewAddressHandler(svc, partner.OwnerClient)
	companies := NewAddressHandler(svc, partner.OwnerCompany)
	r.GET("/orgs/:orgId/clients/:id/addresses", clients.List)
	r.POST("/orgs/:orgId/companies/:id/addresses/:addressId/default", companies.SetDefault)

	svc.On("List", mock.Anything, orgID, partner.Owner{Type: partner.OwnerClient, ID: ownerID}).
		Return(action.Success([]partnerapp.AddressResponse{}))
	svc.On("SetDefault", mock.Anything, orgID, partner.Owner{Type: partner.OwnerCompany, ID: ownerID}, addrID).
		Return(action.Success(partnerapp.AddressResponse{ID: addrID, IsDefault: true}))

	w := serve(r, "GET", "/orgs/"+orgID.String()+"/clients/"+ownerID.String()+"/addresses", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, "POST", "/orgs/"+orgID.String()+"/companies/"+ownerID.String()+"/addresses/"+addrID.String()+"/default", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeResponse(t, w).Data.(map[string]any)["is_default"])

	svc.AssertExpectations(t)
}

func TestAddressHandler_BadAddressID(t *testing.T) {
	svc := new(MockAddressAPI)
	h := NewAddressHandler(svc, partner.OwnerSupplier)
	r := gin.New()
	r.DELETE("/orgs/:orgId/suppliers/:id/addresses/:addressId", h.Delete)

	w := serve(r, "DELETE", "/orgs/"+uuid.NewString()+"/suppliers/"+uuid.NewString()+"/addresses/x", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
