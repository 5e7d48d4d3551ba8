// pkg/constants/constants.go
package constants

//============== ROLES ==============

type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleBlocked Role = "blocked"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleBlocked:
		return true
	}
	return false
}

//============== REQUESTS ==============

type RequestType string

const (
	RequestTypeItem     RequestType = "item"
	RequestTypeRepair   RequestType = "repair"
	RequestTypePurchase RequestType = "purchase"
	RequestTypeCategory RequestType = "category"
)

func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeItem, RequestTypeRepair, RequestTypePurchase, RequestTypeCategory:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Resolved: заявка в терминальном статусе, ожидает удаления после окна.
func (s RequestStatus) Resolved() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

//============== EQUIPMENT ==============

type EquipmentStatus string

const (
	EquipmentStatusNew    EquipmentStatus = "new"
	EquipmentStatusInUse  EquipmentStatus = "in_use"
	EquipmentStatusBroken EquipmentStatus = "broken"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusNew, EquipmentStatusInUse, EquipmentStatusBroken:
		return true
	}
	return false
}

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis.
const (
	// Формат: session:<sessionID> -> userID
	CacheKeySession = "session:%s"
	// Множество активных сессий пользователя. Формат: user_sessions:<userID>
	CacheKeyUserSessions = "user_sessions:%s"
	// Формат: role:<userID> -> role
	CacheKeyRole = "role:%s"
	// Счётчик неудачных входов. Формат: login_attempts:<email>
	CacheKeyLoginAttempts = "login_attempts:%s"
	// Отметка об уже отправленном уведомлении. Формат: notified:<requestID>:<status>
	CacheKeyNotified = "notified:%s:%s"
	// Активное уведомление. Формат: notification:<userID>:<notificationID>
	CacheKeyNotification = "notification:%s:%s"
	// Множество id активных уведомлений пользователя. Формат: notifications:<userID>
	CacheKeyUserNotifications = "notifications:%s"
)

// Ключи производных представлений, сбрасываемые после мутаций.
const (
	CacheKeyDashboard        = "cache:dashboard"
	CacheKeyCategories       = "cache:categories"
	CacheKeyApprovedPurchase = "cache:approved_purchases"
)

//============== MARKETPLACES ==============

const (
	MarketplaceYandex      = "Яндекс.Маркет"
	MarketplaceOzon        = "Ozon"
	MarketplaceWildberries = "Wildberries"
	MarketplaceAvito       = "Avito"
)
