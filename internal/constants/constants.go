package constants

// Audit severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Audit categories
const (
	AuditCategoryAuth      = "auth"
	AuditCategoryContent   = "content"
	AuditCategoryUpload    = "upload"
	AuditCategoryShortener = "shortener"
	AuditCategoryExport    = "export"
)

// Common audit actions
const (
	AuditActionLoginSuccess = "login_success"
	AuditActionLoginFailed  = "login_failed"
	AuditActionLogout       = "logout"
)

// Queue names and task types
const (
	QueueDefault        = "default"
	TaskAuditLogCleanup = "audit:cleanup"
)

// Session cookie issued to the admin dashboard.
const AdminSessionCookie = "admin_session"

// Short-link categories, used as slug namespaces.
const (
	ShortLinkCategoryBlog    = "blog"
	ShortLinkCategoryPricing = "pricing"
	ShortLinkCategoryPage    = "page"
	ShortLinkCategoryGeneral = "general"
)

// Captcha scenes
const CaptchaSceneAdminLogin = "admin_login"
