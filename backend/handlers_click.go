package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"countryclick/backend/lookup"
)

// sessionMiddleware 依 cookie 取得 session，沒有就發一個新的。
// cookie 每次都重發，到期時間跟著伺服器端的閒置時間往後延。
func (a *App) sessionMiddleware(c *gin.Context) {
	id, _ := c.Cookie(sessionCookie)
	sess, _ := a.sessions.Get(id)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, int(a.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.Set("session", sess)
	c.Next()
}

func sessionFrom(c *gin.Context) *Session {
	return c.MustGet("session").(*Session)
}

// postClick 地圖點擊：查完兩支 API 才回應
func (a *App) postClick(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 使用者關掉分頁不算 geocoder 失敗，查詢照樣跑完
	ctx := context.WithoutCancel(c.Request.Context())

	sess := sessionFrom(c)
	st, err := sess.Surface.Click(ctx, lookup.Coordinate{Lat: *req.Lat, Lng: *req.Lng})
	if errors.Is(err, lookup.ErrInvalidCoordinate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, st)
}

func (a *App) getState(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).Orchestrator.State())
}

func (a *App) resetState(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Orchestrator.Reset()
	c.JSON(http.StatusOK, sess.Orchestrator.State())
}

// streamState 用 SSE 推送狀態變化，同一個 session 開多個分頁也會同步
func (a *App) streamState(c *gin.Context) {
	updates, cancel := sessionFrom(c).Orchestrator.Subscribe()
	defer cancel()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case st, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("state", st)
			return true
		}
	})
}

func (a *App) getMapConfig(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).Surface.Config())
}
