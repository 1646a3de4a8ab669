package rbac

import (
	"hr-pipeline-backend/models"
)

var (
	RHRoleSet        = []models.UserRole{models.RHRole}
	RHManagerRoleSet = []models.UserRole{models.RHRole, models.ManagerRole}
	AllRoles         = []models.UserRole{models.RHRole, models.ManagerRole, models.CORole}
)

type rule struct {
	module     models.Module
	permission models.Permission
	roles      []models.UserRole
	pattern    string
}

func (i *impl) initRules() error {
	groups := [][]rule{
		usersRules(),
		hiringRequestRules(),
		candidateRules(),
		interviewRules(),
		offerRules(),
		dashboardRules(),
	}
	for _, group := range groups {
		for _, item := range group {
			if err := i.RegisterRule(item.module, item.permission, item.roles, item.pattern, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func usersRules() []rule {
	return []rule{
		{models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users [get]"},
		{models.UsersModule, models.ManagePermission, RHRoleSet, "/api/v1/users [post]"},
		{models.UsersModule, models.ManagePermission, RHRoleSet, "/api/v1/users/{id}/active [put]"},
	}
}

func hiringRequestRules() []rule {
	return []rule{
		// VIEW
		{models.HiringRequestModule, models.ViewPermission, AllRoles, "/api/v1/hiring_requests/list [post]"},
		{models.HiringRequestModule, models.ViewPermission, AllRoles, "/api/v1/hiring_requests/{id} [get]"},
		{models.HiringRequestModule, models.ViewPermission, AllRoles, "/api/v1/hiring_requests/{id}/validations [get]"},
		// CREATE/EDIT, автор заявки проверяется в обработчике
		{models.HiringRequestModule, models.CreatePermission, AllRoles, "/api/v1/hiring_requests [post]"},
		{models.HiringRequestModule, models.EditPermission, AllRoles, "/api/v1/hiring_requests/{id} [put]"},
		{models.HiringRequestModule, models.ManagePermission, RHRoleSet, "/api/v1/hiring_requests/{id} [delete]"},
		{models.HiringRequestModule, models.ManagePermission, RHManagerRoleSet, "/api/v1/hiring_requests/{id}/change_status [put]"},
		// FLOW, шаг согласования сверяется с ролью в обработчике
		{models.HiringRequestModule, models.FlowPermission, AllRoles, "/api/v1/hiring_requests/{id}/validate [put]"},
	}
}

func candidateRules() []rule {
	return []rule{
		// VIEW
		{models.CandidateModule, models.ViewPermission, AllRoles, "/api/v1/candidates/list [post]"},
		{models.CandidateModule, models.ViewPermission, AllRoles, "/api/v1/candidates/{id} [get]"},
		{models.CandidateModule, models.ViewPermission, AllRoles, "/api/v1/candidates/{id}/history [get]"},
		// CREATE/EDIT
		{models.CandidateModule, models.CreatePermission, AllRoles, "/api/v1/candidates [post]"},
		{models.CandidateModule, models.EditPermission, AllRoles, "/api/v1/candidates/{id} [put]"},
		{models.CandidateModule, models.ManagePermission, RHRoleSet, "/api/v1/candidates/{id} [delete]"},
		// OPINION
		{models.CandidateModule, models.OpinionPermission, RHManagerRoleSet, "/api/v1/candidates/{id}/opinion [put]"},
		{models.CandidateModule, models.OpinionPermission, RHManagerRoleSet, "/api/v1/candidates/{id}/change_status [put]"},
		// FILES
		{models.CandidateModule, models.FilesPermission, AllRoles, "/api/v1/candidates/{id}/upload-resume [post]"},
		{models.CandidateModule, models.FilesPermission, AllRoles, "/api/v1/candidates/{id}/resume [get]"},
		// EXPORT
		{models.CandidateModule, models.ExportPermission, RHManagerRoleSet, "/api/v1/candidates/export [post]"},
	}
}

func interviewRules() []rule {
	return []rule{
		{models.InterviewModule, models.ViewPermission, AllRoles, "/api/v1/candidates/{id}/interviews [get]"},
		{models.InterviewModule, models.EditPermission, RHManagerRoleSet, "/api/v1/candidates/{id}/interviews [post]"},
		{models.InterviewModule, models.EditPermission, RHManagerRoleSet, "/api/v1/interviews/{id} [put]"},
		{models.InterviewModule, models.EditPermission, RHManagerRoleSet, "/api/v1/interviews/{id} [delete]"},
		{models.InterviewModule, models.FlowPermission, RHManagerRoleSet, "/api/v1/interviews/{id}/result [put]"},
	}
}

func offerRules() []rule {
	return []rule{
		{models.OfferModule, models.ViewPermission, AllRoles, "/api/v1/candidates/{id}/offer [get]"},
		{models.OfferModule, models.ViewPermission, RHManagerRoleSet, "/api/v1/candidates/{id}/offer/pdf [get]"},
		{models.OfferModule, models.EditPermission, RHRoleSet, "/api/v1/candidates/{id}/offer [post]"},
		{models.OfferModule, models.FlowPermission, RHRoleSet, "/api/v1/candidates/{id}/offer/response [put]"},
		{models.MedicalVisitModule, models.ViewPermission, AllRoles, "/api/v1/candidates/{id}/medical_visit [get]"},
		{models.MedicalVisitModule, models.EditPermission, RHRoleSet, "/api/v1/candidates/{id}/medical_visit [post]"},
		{models.MedicalVisitModule, models.FlowPermission, RHRoleSet, "/api/v1/candidates/{id}/medical_visit/result [put]"},
	}
}

func dashboardRules() []rule {
	return []rule{
		{models.DashboardModule, models.ViewPermission, AllRoles, "/api/v1/dashboard/stats [get]"},
		{models.DashboardModule, models.ExportPermission, RHManagerRoleSet, "/api/v1/dashboard/export [get]"},
	}
}
