package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	UsersModule         Module = "USERS"
	HiringRequestModule Module = "HIRING_REQUEST"
	CandidateModule     Module = "CANDIDATE"
	InterviewModule     Module = "INTERVIEW"
	OfferModule         Module = "OFFER"
	MedicalVisitModule  Module = "MEDICAL_VISIT"
	NotificationModule  Module = "NOTIFICATION"
	DashboardModule     Module = "DASHBOARD"
)

type Permission string

const (
	CreatePermission  Permission = "CREATE"
	EditPermission    Permission = "EDIT"
	ViewPermission    Permission = "VIEW"
	ManagePermission  Permission = "MANAGE"
	FlowPermission    Permission = "FLOW"
	OpinionPermission Permission = "OPINION"
	FilesPermission   Permission = "FILES"
	ExportPermission  Permission = "EXPORT"
)
