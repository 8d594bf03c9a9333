package gateway

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/controllers"
	grpcctl "github.com/chrissnell/suncalc/internal/controllers/grpc"
	"github.com/chrissnell/suncalc/pkg/config"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestGatewayServesRESTAndGRPC(t *testing.T) {
	svc, err := almanac.NewService(16, 1)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	sky := controllers.NewSky([]almanac.Observer{{Name: "kyiv", Latitude: 50.5, Longitude: 30.5}}, svc, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	c, err := NewController(ctx, &wg, config.GatewayData{Port: 1}, sky, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	c.Serve(l)
	addr := l.Addr().String()

	httpClient := &http.Client{Timeout: 5 * time.Second}
	resp, err := httpClient.Get("http://" + addr + "/api/v1/observers")
	if err != nil {
		t.Fatalf("GET observers: %v", err)
	}
	defer resp.Body.Close()
	var observers []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&observers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(observers) != 1 || observers[0]["name"] != "kyiv" {
		t.Errorf("observers = %v", observers)
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc.NewClient() error = %v", err)
	}
	defer conn.Close()

	rpcCtx, rpcCancel := context.WithTimeout(ctx, 5*time.Second)
	defer rpcCancel()
	pos, err := grpcctl.NewClient(conn).GetPosition(rpcCtx, &grpcctl.PositionRequest{TimeMs: 1362441600000, Latitude: 50.5, Longitude: 30.5})
	if err != nil {
		t.Fatalf("GetPosition() error = %v", err)
	}
	if want := suncalc.GetPosition(1362441600000, 50.5, 30.5); pos.Azimuth != want.Azimuth {
		t.Errorf("azimuth = %v", pos.Azimuth)
	}
}
