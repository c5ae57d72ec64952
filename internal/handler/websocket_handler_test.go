package handler

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"printer-service/internal/config"
	"printer-service/internal/escpos"
	"printer-service/internal/events"
	"printer-service/internal/model"
	"printer-service/internal/probe"
	"printer-service/internal/repository"
	"printer-service/internal/service"
	"printer-service/internal/storage"
	"printer-service/internal/transport"
)

// sink accepts print jobs and throws them away
func sink(t *testing.T) model.Connection {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				io.Copy(io.Discard, c)
			}(c)
		}
	}()
	return model.Connection{IP: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port}
}

func TestEventStreamFiltersByPrinter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	bus := events.NewEventBus(logger)
	go bus.Start()
	t.Cleanup(bus.Stop)

	cfg := &config.Config{
		Storage: config.StorageConfig{UploadDir: t.TempDir()},
		Printer: config.PrinterConfig{MaxPerRole: 3, DefaultPort: 9100, PaperWidthChars: 48, PaperWidthDots: 576},
	}
	printers := repository.NewPrinterRepository(storage.NewMemoryStore(), logger, 3, 9100)
	prober := probe.NewTCPProber(time.Second, logger)
	tr := transport.NewRawSocket(transport.Options{
		Encoder:        escpos.NewEncoder(48, 576),
		DialTimeout:    time.Second,
		ExecuteTimeout: 2 * time.Second,
	}, logger)
	dispatch := service.NewDispatchService(printers, prober, tr, nil, bus, cfg, logger)
	registry := service.NewPrinterService(printers, prober, dispatch, nil, cfg, logger)

	ctx := context.Background()
	conn := sink(t)
	watched, err := registry.SavePrinter(ctx, &service.SavePrinterRequest{Name: "Kitchen", Role: model.RoleKitchen, Connection: conn})
	if err != nil {
		t.Fatalf("SavePrinter: %v", err)
	}
	other, err := registry.SavePrinter(ctx, &service.SavePrinterRequest{Name: "Bar", Role: model.RoleCashier, Connection: conn})
	if err != nil {
		t.Fatalf("SavePrinter: %v", err)
	}

	engine := gin.New()
	NewWebSocketHandler(bus, nil, logger).RegisterRoutes(engine.Group("/ws"))
	srv := httptest.NewServer(engine)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?printer_id=" + url.QueryEscape(strings.ToUpper(watched.ID))
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ws.Close()

	deadline := time.Now().Add(2 * time.Second)
	for bus.SubscriberCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("event stream never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	for _, p := range []*model.PrinterRecord{other, watched} {
		if _, err := dispatch.Dispatch(ctx, p.ID, model.TextJob{Text: "ticket"}, nil, service.DispatchOptions{}); err != nil {
			t.Fatalf("Dispatch(%s): %v", p.Name, err)
		}
	}

	var msg struct {
		Type string `json:"type"`
		Data struct {
			PrinterID string `json:"printer_id"`
		} `json:"data"`
	}
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Unmarshal %q: %v", raw, err)
	}
	if msg.Type != string(model.EventDispatchSucceeded) {
		t.Fatalf("type = %q, want %s", msg.Type, model.EventDispatchSucceeded)
	}
	if msg.Data.PrinterID != watched.ID {
		t.Fatalf("event for printer %q, want %q", msg.Data.PrinterID, watched.ID)
	}

	ws.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, raw, err := ws.ReadMessage(); err == nil {
		t.Fatalf("unexpected second event: %s", raw)
	}
}
