package router

import (
	"pod_dining/handler"
	"pod_dining/middleware"
	"pod_dining/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	// Quản trị ghế (nhân viên / quản lý)
	seat := v1.Group("/seats", logger.New())
	seat.Get("/location/:locationId", middleware.Protected(), validate.GetById("locationId"), handler.GetSeatsByLocation)
	seat.Get("/location/:locationId/available", middleware.Protected(), validate.GetById("locationId"), handler.GetAvailableSeats)
	seat.Post("/link-dual", middleware.Protected(), validate.LinkDual(), handler.LinkDualPods)
	seat.Post("/:seatId/unlink-dual", middleware.Protected(), validate.GetById("seatId"), handler.UnlinkDualPod)
	seat.Post("/reserve", middleware.Protected(), validate.SeatIdList("seatIds"), handler.ReserveSeatsForStaff)
	seat.Post("/release", middleware.Protected(), validate.SeatIdList("seatIds"), handler.ReleaseSeatsForStaff)

	// Cơ sở
	location := v1.Group("/locations", logger.New())
	location.Get("/", middleware.OptionalJWT(), handler.GetLocations)
	location.Get("/:slug", middleware.OptionalJWT(), handler.GetLocationBySlug)
	location.Put("/:locationId", middleware.Protected(), validate.GetById("locationId"), handler.UpdateLocation)

	// Pod check-in: khách quét QR trên bàn, không cần đăng nhập
	pod := v1.Group("/pods")
	pod.Get("/:scanCode", middleware.OptionalJWT(), handler.ResolvePod)
	pod.Post("/:scanCode/confirm", middleware.OptionalJWT(), handler.ConfirmArrival)
	pod.Get("/:scanCode/qr", handler.GetPodQR)

	// Nhóm ăn chung
	group := v1.Group("/groups")
	group.Post("/", middleware.OptionalJWT(), validate.CreateGroupOrder(), handler.CreateGroupOrder)
	group.Get("/:groupCode", middleware.OptionalJWT(), handler.GetGroupOrder)
	group.Post("/:groupCode/join", middleware.OptionalJWT(), validate.JoinGroupOrder(), handler.JoinGroupOrder)
	group.Post("/:groupCode/seating-option", middleware.OptionalJWT(), validate.SeatingOption(), handler.ChooseSeatingOption)
	group.Post("/:groupCode/pay", middleware.OptionalJWT(), handler.PayForGroup)
	group.Post("/:groupCode/finish", middleware.Protected(), handler.FinishGroupVisit)

	// Đơn hàng: proxy sang Order Service
	order := v1.Group("/orders")
	order.Get("/:orderRef", middleware.OptionalJWT(), handler.GetOrderByRef)
	order.Post("/:orderRef/reorder", middleware.OptionalJWT(), handler.Reorder)

	// Sơ đồ pod realtime cho màn hình nhân viên
	v1.Get("/ws/pod-map/:locationId", websocket.New(handler.PodMapWebsocket))
}
