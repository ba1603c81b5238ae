// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	activityfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/activity"
	attendancefeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/attendance"
	dashboardfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/dashboard"
	duesfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/dues"
	errorsfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/errors"
	healthfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/health"
	loginfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/login"
	logoutfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/logout"
	membersfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/members"
	reportsfeature "github.com/sanhub4u33-sketch/studyhall/internal/app/features/reports"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/lifecycle"
	activitystore "github.com/sanhub4u33-sketch/studyhall/internal/app/store/activity"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/activitylog"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/auth"
	"github.com/sanhub4u33-sketch/studyhall/internal/app/system/txn"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It wires the domain service from the
// database handle, creates the session manager, and mounts one feature
// router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	// The activity feed and transaction runner back the domain service.
	feed := activitylog.New(activitystore.New(deps.MongoDatabase), logger,
		activitylog.Config{Mode: appCfg.ActivityLog})
	runner := txn.New(deps.MongoClient, logger)

	svc := lifecycle.New(deps.MongoDatabase, runner, feed, logger)
	svc.DefaultFee = appCfg.DefaultMonthlyFee

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.SessionKey, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Member records with their attendance and dues sub-resources
	membersHandler := membersfeature.NewHandler(svc, errLog, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler, sessionMgr))

	// Library-wide attendance views
	attendanceHandler := attendancefeature.NewHandler(svc, errLog, logger)
	r.Mount("/attendance", attendancefeature.Routes(attendanceHandler, sessionMgr))

	// Dues billing and payment
	duesHandler := duesfeature.NewHandler(svc, errLog, logger)
	r.Mount("/dues", duesfeature.Routes(duesHandler, sessionMgr))

	// Activity feed
	activityHandler := activityfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/activity", activityfeature.Routes(activityHandler, sessionMgr))

	// Dashboard rollups
	dashboardHandler := dashboardfeature.NewHandler(svc, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// CSV exports
	reportsHandler := reportsfeature.NewHandler(svc, errLog, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	return r, nil
}
