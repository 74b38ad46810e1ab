package errors

// Error code constants returned in the "error" field of error responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to display
// messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogBrandNotFound        = "CATALOG_BRAND_NOT_FOUND"
	CatalogModelNotFound        = "CATALOG_MODEL_NOT_FOUND"
	CatalogVariantNotFound      = "CATALOG_VARIANT_NOT_FOUND"
	CatalogPartNotFound         = "CATALOG_PART_NOT_FOUND"
	CatalogEquipmentNotFound    = "CATALOG_EQUIPMENT_NOT_FOUND"
	CatalogCategoryNotFound     = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogCategoryNotEmpty     = "CATALOG_CATEGORY_NOT_EMPTY"
	CatalogHasDependents        = "CATALOG_HAS_DEPENDENTS"
	CatalogVariantModelMismatch = "CATALOG_VARIANT_MODEL_MISMATCH"
	CatalogNoMatch              = "CATALOG_NO_MATCH"

	// ==================== Cart (CART_) ====================
	CartItemNotFound    = "CART_ITEM_NOT_FOUND"
	CartInvalidItemType = "CART_INVALID_ITEM_TYPE"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"
	OrderCartEmpty     = "ORDER_CART_EMPTY"
	OrderInvalidStatus = "ORDER_INVALID_STATUS"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
