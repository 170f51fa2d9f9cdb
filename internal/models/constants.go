package models

// Роли пользователей.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// PostStatus константы статусов публикации постов.
const (
	PostStatusPublished = "published"
	PostStatusPending   = "pending"
	PostStatusRejected  = "rejected"
)

// VoteDirection единственный канонический двухзначный тип направления голоса.
const (
	VoteDirectionUp   = "up"
	VoteDirectionDown = "down"
)

// ReportStatus статусы жизненного цикла жалобы.
// pending — начальный; resolved и dismissed — терминальные.
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// ReportReason категории жалоб.
const (
	ReportReasonSpam       = "spam"
	ReportReasonHarassment = "harassment"
	ReportReasonIllegal    = "illegal"
	ReportReasonOther      = "other"
)

// ReportDecision решения модератора по жалобе.
const (
	ReportDecisionResolve       = "resolve"
	ReportDecisionDismiss       = "dismiss"
	ReportDecisionDeleteContent = "delete_content"
	ReportDecisionBanUser       = "ban_user"
)

// VerificationStatus статусы запроса на верификацию.
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// VerificationDecision решения по запросу на верификацию.
const (
	VerificationDecisionApprove = "approve"
	VerificationDecisionReject  = "reject"
)

// NotificationType типы уведомлений.
const (
	NotificationTypePostUpvoted          = "post_upvoted"
	NotificationTypePostCommented        = "post_commented"
	NotificationTypeCommentReplied       = "comment_replied"
	NotificationTypeVerificationApproved = "verification_approved"
)

// ValidVoteDirections список валидных направлений голоса.
var ValidVoteDirections = map[string]struct{}{
	VoteDirectionUp:   {},
	VoteDirectionDown: {},
}

// ValidReportReasons список валидных категорий жалоб.
var ValidReportReasons = map[string]struct{}{
	ReportReasonSpam:       {},
	ReportReasonHarassment: {},
	ReportReasonIllegal:    {},
	ReportReasonOther:      {},
}

// ValidReportDecisions список валидных решений по жалобе.
var ValidReportDecisions = map[string]struct{}{
	ReportDecisionResolve:       {},
	ReportDecisionDismiss:       {},
	ReportDecisionDeleteContent: {},
	ReportDecisionBanUser:       {},
}

// ValidVerificationDecisions список валидных решений по запросу на верификацию.
var ValidVerificationDecisions = map[string]struct{}{
	VerificationDecisionApprove: {},
	VerificationDecisionReject:  {},
}

// ValidRoles список валидных ролей.
var ValidRoles = map[string]struct{}{
	RoleUser:      {},
	RoleModerator: {},
	RoleAdmin:     {},
}

// IsModeratorRole сообщает, даёт ли роль права модерации.
func IsModeratorRole(role string) bool {
	return role == RoleModerator || role == RoleAdmin
}
