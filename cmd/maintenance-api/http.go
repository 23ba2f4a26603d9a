// Copyright 2024 Bonchef Industrial
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/config"
	"github.com/bonchef/maintenance-api/internal/controllers"
	"github.com/bonchef/maintenance-api/internal/models"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_api_requests_total",
		Help: "Count of handled HTTP requests.",
	}, []string{"method", "path", "status"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "maintenance_api_request_duration_seconds",
		Help: "Duration of handled HTTP requests.",
	}, []string{"method", "path"})
)

// SetupRestAPI builds the gin router and wraps it in an http.Server so main
// can shut it down gracefully.
func SetupRestAPI(ct *controllers.Controller, authenticator *auth.Authenticator, cfg config.Config) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - Logs to stdout.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(metricsMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api.POST("/auth/register", ct.RegisterHandler)
	api.POST("/auth/login", ct.LoginHandler)

	authed := api.Group("", authenticator.Middleware())
	{
		authed.GET("/auth/me", ct.MeHandler)

		authed.GET("/users", auth.RequireRole(models.RoleAdmin, models.RoleSupervisor), ct.ListUsersHandler)
		authed.GET("/users/technicians", ct.ListTechniciansHandler)
		authed.PUT("/users/:id/role", auth.RequireRole(models.RoleAdmin), ct.UpdateUserRoleHandler)
		authed.DELETE("/users/:id", auth.RequireRole(models.RoleAdmin), ct.DeleteUserHandler)

		elevated := auth.RequireRole(models.RoleAdmin, models.RoleSupervisor)
		adminOnly := auth.RequireRole(models.RoleAdmin)

		authed.POST("/departments", elevated, ct.CreateDepartmentHandler)
		authed.GET("/departments", ct.ListDepartmentsHandler)
		authed.GET("/departments/:id", ct.GetDepartmentHandler)
		authed.PUT("/departments/:id", elevated, ct.UpdateDepartmentHandler)
		authed.DELETE("/departments/:id", adminOnly, ct.DeleteDepartmentHandler)

		authed.POST("/production-lines", elevated, ct.CreateProductionLineHandler)
		authed.GET("/production-lines", ct.ListProductionLinesHandler)
		authed.GET("/production-lines/:id", ct.GetProductionLineHandler)
		authed.PUT("/production-lines/:id", elevated, ct.UpdateProductionLineHandler)
		authed.PUT("/production-lines/:id/status", elevated, ct.ToggleProductionLineStatusHandler)
		authed.DELETE("/production-lines/:id", adminOnly, ct.DeleteProductionLineHandler)

		authed.POST("/machines", elevated, ct.CreateMachineHandler)
		authed.GET("/machines", ct.ListMachinesHandler)
		authed.GET("/machines/:id", ct.GetMachineHandler)
		authed.PUT("/machines/:id", elevated, ct.UpdateMachineHandler)
		authed.DELETE("/machines/:id", adminOnly, ct.DeleteMachineHandler)
		authed.POST("/machines/:id/attachments", ct.AddMachineAttachmentHandler)
		authed.GET("/machines/:id/attachments", ct.ListMachineAttachmentsHandler)
		authed.GET("/machines/:id/attachments/:attachment_id", ct.GetMachineAttachmentHandler)
		authed.DELETE("/machines/:id/attachments/:attachment_id", ct.RemoveMachineAttachmentHandler)

		authed.POST("/stops", ct.CreateStopHandler)
		authed.GET("/stops", ct.ListStopsHandler)
		authed.PUT("/stops/:id", ct.UpdateStopHandler)
		authed.DELETE("/stops/:id", elevated, ct.DeleteStopHandler)

		authed.POST("/line-starts", ct.CreateLineStartHandler)
		authed.GET("/line-starts", ct.ListLineStartsHandler)
		authed.GET("/line-starts/compliance-stats", ct.LineStartComplianceStatsHandler)
		authed.DELETE("/line-starts/:id", elevated, ct.DeleteLineStartHandler)

		authed.POST("/work-orders", ct.CreateWorkOrderHandler)
		authed.GET("/work-orders", ct.ListWorkOrdersHandler)
		authed.GET("/work-orders/my-orders", ct.MyWorkOrdersHandler)
		authed.GET("/work-orders/:id", ct.GetWorkOrderHandler)
		authed.PUT("/work-orders/:id", ct.UpdateWorkOrderHandler)
		authed.DELETE("/work-orders/:id", elevated, ct.DeleteWorkOrderHandler)
		authed.POST("/work-orders/:id/attachments", ct.AddWorkOrderAttachmentHandler)
		authed.GET("/work-orders/:id/attachments", ct.ListWorkOrderAttachmentsHandler)
		authed.GET("/work-orders/:id/attachments/:attachment_id", ct.GetWorkOrderAttachmentHandler)
		authed.DELETE("/work-orders/:id/attachments/:attachment_id", ct.RemoveWorkOrderAttachmentHandler)

		authed.GET("/checklist-templates", ct.ListChecklistTemplatesHandler)
		authed.GET("/checklist-templates/default", ct.DefaultChecklistHandler)
		authed.POST("/checklist-templates", elevated, ct.CreateChecklistTemplateHandler)
		authed.PUT("/checklist-templates/:id", elevated, ct.UpdateChecklistTemplateHandler)
		authed.PUT("/checklist-templates/:id/default", elevated, ct.SetDefaultChecklistTemplateHandler)
		authed.DELETE("/checklist-templates/:id", adminOnly, ct.DeleteChecklistTemplateHandler)

		authed.POST("/spare-parts", elevated, ct.CreateSparePartHandler)
		authed.GET("/spare-parts", ct.ListSparePartsHandler)
		authed.GET("/spare-parts/:id", ct.GetSparePartHandler)
		authed.PUT("/spare-parts/:id", elevated, ct.UpdateSparePartHandler)
		authed.DELETE("/spare-parts/:id", adminOnly, ct.DeleteSparePartHandler)
		authed.POST("/spare-part-requests", ct.CreatePartRequestHandler)
		authed.GET("/spare-part-requests", ct.ListPartRequestsHandler)
		authed.PUT("/spare-part-requests/:id/resolve", elevated, ct.ResolvePartRequestHandler)

		authed.GET("/dashboard/stats", ct.DashboardStatsHandler)
		authed.GET("/dashboard/recent-orders", ct.RecentWorkOrdersHandler)
		authed.GET("/dashboard/calendar", ct.WorkOrderCalendarHandler)
		authed.GET("/analytics/preventive-vs-corrective", ct.PreventiveVsCorrectiveHandler)
		authed.GET("/analytics/failure-causes", ct.FailureCausesHandler)
		authed.GET("/analytics/preventive-compliance", ct.PreventiveComplianceHandler)
		authed.GET("/analytics/stops", ct.StopsAnalyticsHandler)
		authed.GET("/analytics/line-starts", ct.LineStartsAnalyticsHandler)
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		requestCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
