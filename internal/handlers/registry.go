package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	GroupHandler   *GroupHandler
	UploadHandler  *UploadHandler
	MemberHandler  *MemberHandler
	AdminHandler   *AdminHandler
	ProfileHandler *ProfileHandler
	HealthHandler  *HealthHandler
}
