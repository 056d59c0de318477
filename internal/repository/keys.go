package repository

// Keys of the persisted values. Each is an independent JSON document.
const (
	KeyActiveSession  = "activeSession"
	KeySessionHistory = "sessionHistory"
	KeySales          = "sales"
	KeyProducts       = "products"
	KeyCategories     = "categories"
	KeyLoggedIn       = "isLoggedIn"
	KeyOperatorEmail  = "operatorEmail"
)
