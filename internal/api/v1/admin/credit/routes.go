package credit

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup) {
	credits := r.Group("/credits")
	{
		credits.POST("/adjust", AdjustCredits)
		credits.GET("/transactions", ListTransactions)
		credits.GET("/transactions/export", ExportTransactions)
	}
}
