// Package authz holds the single authorization policy table consulted by
// every state-changing service method. Route-level RBAC middleware narrows
// visibility; this table is the authoritative server-side check.
package authz

import (
	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

// Operation identifies a protected command.
type Operation string

const (
	OpUserList Operation = "user.list"

	OpRoomCreate   Operation = "room.create"
	OpRoomEdit     Operation = "room.edit"
	OpRoomUnassign Operation = "room.unassign"
	OpRoomDelete   Operation = "room.delete"
	OpRoomListAll  Operation = "room.list_all"

	OpRequestSubmit  Operation = "request.submit"
	OpRequestReview  Operation = "request.review"
	OpRequestApprove Operation = "request.approve"
	OpRequestReject  Operation = "request.reject"

	OpMaintenanceCreate Operation = "maintenance.create"
	OpMaintenanceStatus Operation = "maintenance.status"
	OpMaintenanceAssign Operation = "maintenance.assign"
	OpMaintenanceDelete Operation = "maintenance.delete"

	OpEventCreate Operation = "event.create"
	OpEventEdit   Operation = "event.edit"
	OpEventDelete Operation = "event.delete"

	OpFeeCreate Operation = "fee.create"
	OpFeeStatus Operation = "fee.status"
	OpFeeDelete Operation = "fee.delete"

	OpVisitorRegister Operation = "visitor.register"
	OpVisitorDecide   Operation = "visitor.decide"
	OpVisitorDelete   Operation = "visitor.delete"

	OpFeedbackSubmit Operation = "feedback.submit"
	OpFeedbackView   Operation = "feedback.view"

	OpExportVisitors Operation = "export.visitors"
	OpExportFees     Operation = "export.fees"

	OpDashboardAdmin   Operation = "dashboard.admin"
	OpDashboardStudent Operation = "dashboard.student"
)

var policy = map[Operation][]models.UserRole{
	OpUserList: {models.RoleAdmin},

	OpRoomCreate:   {models.RoleAdmin},
	OpRoomEdit:     {models.RoleAdmin},
	OpRoomUnassign: {models.RoleAdmin},
	OpRoomDelete:   {models.RoleAdmin},
	OpRoomListAll:  {models.RoleStaff, models.RoleAdmin},

	OpRequestSubmit:  {models.RoleStudent},
	OpRequestReview:  {models.RoleAdmin},
	OpRequestApprove: {models.RoleAdmin},
	OpRequestReject:  {models.RoleAdmin},

	OpMaintenanceCreate: {models.RoleStudent, models.RoleStaff},
	OpMaintenanceStatus: {models.RoleStaff, models.RoleAdmin},
	OpMaintenanceAssign: {models.RoleStaff, models.RoleAdmin},
	OpMaintenanceDelete: {models.RoleAdmin},

	OpEventCreate: {models.RoleAdmin},
	OpEventEdit:   {models.RoleAdmin},
	OpEventDelete: {models.RoleAdmin},

	OpFeeCreate: {models.RoleAdmin},
	OpFeeStatus: {models.RoleAdmin},
	OpFeeDelete: {models.RoleAdmin},

	OpVisitorRegister: {models.RoleStudent},
	OpVisitorDecide:   {models.RoleStaff, models.RoleAdmin},
	OpVisitorDelete:   {models.RoleAdmin},

	OpFeedbackSubmit: {models.RoleStudent},
	OpFeedbackView:   {models.RoleStudent, models.RoleAdmin},

	OpExportVisitors: {models.RoleStaff, models.RoleAdmin},
	OpExportFees:     {models.RoleStudent, models.RoleAdmin},

	OpDashboardAdmin:   {models.RoleAdmin},
	OpDashboardStudent: {models.RoleStudent},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role models.UserRole, op Operation) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns ErrForbidden when the role may not perform the operation.
func Require(role models.UserRole, op Operation) error {
	if !Allowed(role, op) {
		return appErrors.ErrForbidden
	}
	return nil
}

// Roles returns the roles permitted to perform the operation, used by the
// router to derive RBAC middleware from the same table services consult.
func Roles(op Operation) []models.UserRole {
	return policy[op]
}
