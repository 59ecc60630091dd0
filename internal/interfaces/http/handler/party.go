package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	partnerapp "github.com/orgdesk/backend/internal/application/partner"
	"github.com/orgdesk/backend/internal/domain/partner"
)

// ContactAPI is the contact surface used by ContactHandler
type ContactAPI interface {
	List(ctx context.Context, orgID uuid.UUID, owner partner.Owner) action.Result[[]partnerapp.ContactResponse]
	Create(ctx context.Context, orgID uuid.UUID, owner partner.Owner, in partnerapp.ContactInput) action.Result[partnerapp.ContactResponse]
	Update(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID, in partnerapp.ContactInput) action.Result[partnerapp.ContactResponse]
	SetPrimary(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[partnerapp.ContactResponse]
	Delete(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[struct{}]
}

// AddressAPI is the address surface used by AddressHandler
type AddressAPI interface {
	List(ctx context.Context, orgID uuid.UUID, owner partner.Owner) action.Result[[]partnerapp.AddressResponse]
	Create(ctx context.Context, orgID uuid.UUID, owner partner.Owner, in partnerapp.AddressInput) action.Result[partnerapp.AddressResponse]
	Update(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID, in partnerapp.AddressInput) action.Result[partnerapp.AddressResponse]
	SetDefault(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[partnerapp.AddressResponse]
	Delete(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[struct{}]
}

// ownerScope reads the organization and owner from the route. The owner
// type is fixed by the route group the handler is mounted on.
func ownerScope(c *gin.Context, ownerType partner.OwnerType) (uuid.UUID, partner.Owner, bool) {
	orgID, ownerID, ok := orgAndID(c)
	if !ok {
		return uuid.Nil, partner.Owner{}, false
	}
	return orgID, partner.Owner{Type: ownerType, ID: ownerID}, true
}

// ContactHandler handles the contacts of clients or suppliers
type ContactHandler struct {
	contacts  ContactAPI
	ownerType partner.OwnerType
}

// NewContactHandler creates contact endpoints for one owner type
func NewContactHandler(contacts ContactAPI, ownerType partner.OwnerType) *ContactHandler {
	return &ContactHandler{contacts: contacts, ownerType: ownerType}
}

// List godoc
// @Summary      List contacts
// @Description  List the contacts of a client or supplier
// @Tags         contacts
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]partner.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/contacts [get]
// @Router       /organizations/{orgId}/suppliers/{id}/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	respond(c, h.contacts.List(c.Request.Context(), orgID, owner), http.StatusOK)
}

// Create godoc
// @Summary      Create a contact
// @Description  Add a contact to a client or supplier
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        request body partner.ContactInput true "Contact details"
// @Success      201 {object} dto.Response{data=partner.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/contacts [post]
// @Router       /organizations/{orgId}/suppliers/{id}/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	var in partnerapp.ContactInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.contacts.Create(c.Request.Context(), orgID, owner, in), http.StatusCreated)
}

// Update godoc
// @Summary      Update a contact
// @Description  Update the contact details
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        contactId path string true "Contact ID" format(uuid)
// @Param        request body partner.ContactInput true "Contact details"
// @Success      200 {object} dto.Response{data=partner.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/contacts/{contactId} [put]
// @Router       /organizations/{orgId}/suppliers/{id}/contacts/{contactId} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "contactId")
	if !ok {
		return
	}
	var in partnerapp.ContactInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.contacts.Update(c.Request.Context(), orgID, owner, id, in), http.StatusOK)
}

// SetPrimary makes the contact the owner's primary one
//
// @Summary      Set primary contact
// @Description  Make the contact the owner's primary one
// @Tags         contacts
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        contactId path string true "Contact ID" format(uuid)
// @Success      200 {object} dto.Response{data=partner.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/contacts/{contactId}/primary [post]
// @Router       /organizations/{orgId}/suppliers/{id}/contacts/{contactId}/primary [post]
func (h *ContactHandler) SetPrimary(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "contactId")
	if !ok {
		return
	}
	respond(c, h.contacts.SetPrimary(c.Request.Context(), orgID, owner, id), http.StatusOK)
}

// Delete godoc
// @Summary      Delete a contact
// @Description  Delete the contact
// @Tags         contacts
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        contactId path string true "Contact ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/contacts/{contactId} [delete]
// @Router       /organizations/{orgId}/suppliers/{id}/contacts/{contactId} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "contactId")
	if !ok {
		return
	}
	respondEmpty(c, h.contacts.Delete(c.Request.Context(), orgID, owner, id))
}

// AddressHandler handles the addresses of clients, suppliers or companies
type AddressHandler struct {
	addresses AddressAPI
	ownerType partner.OwnerType
}

// NewAddressHandler creates address endpoints for one owner type
func NewAddressHandler(addresses AddressAPI, ownerType partner.OwnerType) *AddressHandler {
	return &AddressHandler{addresses: addresses, ownerType: ownerType}
}

// List godoc
// @Summary      List addresses
// @Description  List the addresses of a client, supplier or company
// @Tags         addresses
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]partner.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/addresses [get]
// @Router       /organizations/{orgId}/suppliers/{id}/addresses [get]
// @Router       /organizations/{orgId}/companies/{id}/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	respond(c, h.addresses.List(c.Request.Context(), orgID, owner), http.StatusOK)
}

// Create godoc
// @Summary      Create an address
// @Description  Add an address to a client, supplier or company
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        request body partner.AddressInput true "Address details"
// @Success      201 {object} dto.Response{data=partner.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/addresses [post]
// @Router       /organizations/{orgId}/suppliers/{id}/addresses [post]
// @Router       /organizations/{orgId}/companies/{id}/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	var in partnerapp.AddressInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.addresses.Create(c.Request.Context(), orgID, owner, in), http.StatusCreated)
}

// Update godoc
// @Summary      Update an address
// @Description  Update the address details
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        addressId path string true "Address ID" format(uuid)
// @Param        request body partner.AddressInput true "Address details"
// @Success      200 {object} dto.Response{data=partner.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/addresses/{addressId} [put]
// @Router       /organizations/{orgId}/suppliers/{id}/addresses/{addressId} [put]
// @Router       /organizations/{orgId}/companies/{id}/addresses/{addressId} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "addressId")
	if !ok {
		return
	}
	var in partnerapp.AddressInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.addresses.Update(c.Request.Context(), orgID, owner, id, in), http.StatusOK)
}

// SetDefault makes the address the owner's default one
//
// @Summary      Set default address
// @Description  Make the address the owner's default one
// @Tags         addresses
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        addressId path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response{data=partner.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/addresses/{addressId}/default [post]
// @Router       /organizations/{orgId}/suppliers/{id}/addresses/{addressId}/default [post]
// @Router       /organizations/{orgId}/companies/{id}/addresses/{addressId}/default [post]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "addressId")
	if !ok {
		return
	}
	respond(c, h.addresses.SetDefault(c.Request.Context(), orgID, owner, id), http.StatusOK)
}

// Delete godoc
// @Summary      Delete an address
// @Description  Delete the address
// @Tags         addresses
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Owner ID" format(uuid)
// @Param        addressId path string true "Address ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/addresses/{addressId} [delete]
// @Router       /organizations/{orgId}/suppliers/{id}/addresses/{addressId} [delete]
// @Router       /organizations/{orgId}/companies/{id}/addresses/{addressId} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	orgID, owner, ok := ownerScope(c, h.ownerType)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "addressId")
	if !ok {
		return
	}
	respondEmpty(c, h.addresses.Delete(c.Request.Context(), orgID, owner, id))
}
