package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoicemonk/backend/internal/domain/identity"
	"github.com/invoicemonk/backend/internal/infrastructure/auth"
	"github.com/invoicemonk/backend/internal/infrastructure/cache"
	appidentity "github.com/invoicemonk/backend/internal/application/identity"
	"github.com/invoicemonk/backend/internal/interfaces/http/handler"
	"github.com/invoicemonk/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the resource handlers registered by Setup
type Handlers struct {
	Auth         *handler.AuthHandler
	Business     *handler.BusinessHandler
	Account      *handler.AccountHandler
	Invoice      *handler.InvoiceHandler
	Public       *handler.PublicHandler
	Expense      *handler.ExpenseHandler
	Report       *handler.ReportHandler
	Subscription *handler.SubscriptionHandler
	Audit        *handler.AuditHandler
}

// Deps carries the cross-cutting services the middleware chain needs
type Deps struct {
	JWTService        *auth.JWTService
	TokenBlacklist    auth.TokenBlacklist
	MembershipService *appidentity.MembershipService
	IdempotencyStore  cache.IdempotencyStore
	IdempotencyTTL    time.Duration
	// AuthRateLimit guards the credential endpoints against brute
	// force attempts. Optional.
	AuthRateLimit gin.HandlerFunc
}

// Setup registers all API routes under /api/v1. Route groups build up
// the middleware chain in three layers: public, authenticated, and
// business-scoped with per-route permission checks.
func Setup(engine *gin.Engine, h Handlers, deps Deps) {
	api := engine.Group("/api/v1")

	// Public verification endpoints, keyed by verification ID
	api.GET("/verify/:verificationId", h.Public.Verify)
	api.POST("/view/:verificationId", h.Public.MarkViewed)

	authGroup := api.Group("/auth")
	if deps.AuthRateLimit != nil {
		authGroup.Use(deps.AuthRateLimit)
	}
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(deps.JWTService, deps.TokenBlacklist))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)
		authed.POST("/auth/change-password", h.Auth.ChangePassword)

		authed.POST("/businesses", h.Business.Create)
		authed.GET("/businesses", h.Business.List)
	}

	idempotent := middleware.Idempotency(deps.IdempotencyStore, deps.IdempotencyTTL)

	biz := authed.Group("/businesses/:businessId")
	biz.Use(middleware.BusinessScope(deps.MembershipService))
	{
		biz.GET("", h.Business.Get)
		biz.PUT("",
			middleware.RequirePermission(identity.PermissionManageBusiness),
			h.Business.Update)

		members := biz.Group("/members")
		{
			members.GET("", h.Business.ListMembers)
			members.POST("",
				middleware.RequirePermission(identity.PermissionManageTeam),
				h.Business.AddMember)
			members.PUT("/:memberId",
				middleware.RequirePermission(identity.PermissionManageTeam),
				h.Business.ChangeMemberRole)
			members.DELETE("/:memberId",
				middleware.RequirePermission(identity.PermissionManageTeam),
				h.Business.RemoveMember)
		}

		accounts := biz.Group("/accounts")
		{
			accounts.GET("", h.Account.List)
			accounts.GET("/:accountId", h.Account.Get)
			accounts.POST("",
				middleware.RequirePermission(identity.PermissionManageAccounts),
				h.Account.Create)
			accounts.PUT("/:accountId/rate",
				middleware.RequirePermission(identity.PermissionManageAccounts),
				h.Account.UpdateRate)
			accounts.PUT("/:accountId/name",
				middleware.RequirePermission(identity.PermissionManageAccounts),
				h.Account.Rename)
			accounts.POST("/:accountId/archive",
				middleware.RequirePermission(identity.PermissionManageAccounts),
				h.Account.Archive)
		}

		invoices := biz.Group("/invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.GET("/:invoiceId", h.Invoice.Get)
			invoices.GET("/:invoiceId/payments", h.Invoice.ListPayments)
			invoices.GET("/:invoiceId/pdf", h.Invoice.DownloadPDF)

			manage := middleware.RequirePermission(identity.PermissionManageInvoices)
			invoices.POST("", manage, idempotent, h.Invoice.CreateDraft)
			invoices.PUT("/:invoiceId", manage, h.Invoice.UpdateDraft)
			invoices.DELETE("/:invoiceId", manage, h.Invoice.DeleteDraft)
			invoices.POST("/:invoiceId/issue", manage, idempotent, h.Invoice.Issue)
			invoices.POST("/:invoiceId/send", manage, idempotent, h.Invoice.Send)
			invoices.POST("/:invoiceId/void", manage, h.Invoice.Void)

			invoices.POST("/:invoiceId/payments",
				middleware.RequirePermission(identity.PermissionRecordPayments),
				idempotent, h.Invoice.RecordPayment)
		}

		biz.GET("/credit-notes/:creditNoteId", h.Invoice.GetCreditNote)

		expenses := biz.Group("/expenses")
		{
			expenses.GET("", h.Expense.List)
			expenses.GET("/:expenseId", h.Expense.Get)

			manage := middleware.RequirePermission(identity.PermissionManageExpenses)
			expenses.POST("", manage, idempotent, h.Expense.Record)
			expenses.PUT("/:expenseId", manage, h.Expense.Update)
			expenses.POST("/:expenseId/cancel", manage, h.Expense.Cancel)
			expenses.POST("/import", manage, idempotent, h.Expense.Import)
		}

		reports := biz.Group("/reports")
		reports.Use(middleware.RequirePermission(identity.PermissionRunReports))
		{
			reports.GET("", h.Report.Generate)
			reports.GET("/export",
				middleware.RequirePermission(identity.PermissionExportData),
				h.Report.Export)
		}

		subscription := biz.Group("/subscription")
		{
			subscription.GET("", h.Subscription.Get)
			subscription.GET("/usage", h.Subscription.Usage)

			manage := middleware.RequirePermission(identity.PermissionManageSubscription)
			subscription.PUT("", manage, h.Subscription.ChangeTier)
			subscription.POST("/cancel", manage, h.Subscription.Cancel)
			subscription.POST("/api-token", manage, h.Subscription.IssueAPIToken)
		}

		biz.GET("/audit-log", h.Audit.List)
		biz.GET("/audit-log/verify", h.Audit.VerifyChain)
		biz.GET("/exports",
			middleware.RequirePermission(identity.PermissionExportData),
			h.Audit.ListManifests)
	}
}
