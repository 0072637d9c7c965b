package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roombooking/internal/events"
	"roombooking/internal/middleware"
	"roombooking/internal/modules/auth"
	"roombooking/internal/modules/booking"
	"roombooking/internal/modules/catalog"
	jwtsvc "roombooking/internal/pkg/jwt"
	"roombooking/internal/repository"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the HTTP surface needs. Publisher may be nil; Hub is
// always attached so websocket subscribers see committed changes.
type Deps struct {
	Log         *zap.Logger
	Store       *repository.Store
	Users       *repository.UserRepository
	Rooms       *repository.RoomRepository
	Bookings    *repository.BookingRepository
	JWT         *jwtsvc.Service
	Hub         *events.Hub
	Publisher   events.Publisher
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	publishers := events.Multi{d.Hub}
	if d.Publisher != nil {
		publishers = append(publishers, d.Publisher)
	}

	authHandler := auth.NewHandler(auth.NewService(d.Users, d.JWT))
	catalogHandler := catalog.NewHandler(catalog.NewService(d.Rooms, d.Log))
	bookingHandler := booking.NewHandler(booking.NewService(d.Store, d.Bookings, publishers, d.Log))
	wsHandler := events.NewWSHandler(d.Hub, d.JWT, d.Log)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/healthz", healthz(d.Store))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		wsHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			bookingHandler.RegisterProtectedRoutes(protected)
		}

		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(d.JWT), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
		}
	}

	return r
}

func healthz(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
