package main

// ========== API 請求 / 回應格式 ==========

// ClickRequest 前端傳來的點擊座標
type ClickRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}
