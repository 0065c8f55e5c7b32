package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, cartHandler *CartHandler, favoritesHandler *FavoritesHandler, viewedHandler *RecentlyViewedHandler, catalogHandler *CatalogHandler, emailHandler *EmailHandler, upsellHandler *UpsellHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Cart routes
	cart := api.Group("/cart")
	cart.GET("", cartHandler.GetCart)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:productId", cartHandler.UpdateItem)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem)

	// Favorites routes
	favorites := api.Group("/favorites")
	favorites.GET("", favoritesHandler.GetFavorites)
	favorites.POST("", favoritesHandler.AddFavorite)
	favorites.POST("/toggle", favoritesHandler.ToggleFavorite)
	favorites.DELETE("/:productId", favoritesHandler.RemoveFavorite)

	// Recently viewed routes
	viewed := api.Group("/recently-viewed")
	viewed.GET("", viewedHandler.GetRecentlyViewed)
	viewed.POST("", viewedHandler.RecordView)
	viewed.DELETE("", viewedHandler.ClearRecentlyViewed)

	// Product catalog routes (proxied upstream)
	products := api.Group("/products")
	products.GET("/search", catalogHandler.SearchProducts)
	products.GET("/recommend", catalogHandler.RecommendProducts)
	products.GET("/:id", catalogHandler.GetProduct)
	products.GET("/:id/related", catalogHandler.GetRelatedProducts)

	// Brand style routes (proxied upstream)
	brandStyles := api.Group("/brand-styles")
	brandStyles.GET("", catalogHandler.GetBrandStyles)
	brandStyles.GET("/match", catalogHandler.MatchBrandStyle)

	// Lead capture routes
	email := api.Group("/email")
	email.POST("/register", emailHandler.RegisterEmail)
	email.GET("/contact", emailHandler.GetContact)

	// Post-purchase funnel routes
	purchases := api.Group("/purchases")
	purchases.POST("", upsellHandler.RecordPurchase)
	purchases.GET("/:productId", upsellHandler.GetPurchase)

	upsell := api.Group("/upsell")
	upsell.GET("/:productId/eligibility", upsellHandler.GetOfferEligibility)
	upsell.POST("/:productId/shown", upsellHandler.MarkOfferShown)
	upsell.POST("/purchase", upsellHandler.PurchaseUpsell)

	// WebSocket endpoint for live state events
	e.GET("/ws", wsHandler.HandleWS)
}
