package http

import (
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/http/middleware"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	checkout *CheckoutHandler,
	quote *QuoteHandler,
	menu *MenuHandler,
	token *TokenHandler,
	authz *middleware.Authz,
	sv *middleware.SealedVerify,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", token.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.GET("/menuitems", authz.Require("menu.read"), menu.ListMenuItems)
		v1.POST("/menuitems", authz.Require("menu.write"), menu.UpsertMenuItem)
		v1.DELETE("/menuitems/:name", authz.Require("menu.write"), menu.DeleteMenuItem)

		v1.POST("/quote", authz.Require("orders.read"), quote.PriceOrder)

		v1.POST("/transactions", authz.Require("orders.write"), sv.Unseal(), checkout.CreateTransaction)
		v1.GET("/transactions/:id", authz.Require("orders.read"), checkout.GetTransactionByID)
	}

	return r
}
