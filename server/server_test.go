package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/photonav/config"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/server"
)

func dialAndSend(t *testing.T, port int, req server.Request) string {
	t.Helper()
	var conn net.Conn
	var err error
	for i := 0; i < 20; i++ {
		conn, err = net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	test.That(t, err, test.ShouldBeNil)
	defer conn.Close()

	b, err := json.Marshal(req)
	test.That(t, err, test.ShouldBeNil)
	_, err = conn.Write(b)
	test.That(t, err, test.ShouldBeNil)
	if tcp, ok := conn.(*net.TCPConn); ok {
		test.That(t, tcp.CloseWrite(), test.ShouldBeNil)
	}

	out, err := io.ReadAll(conn)
	test.That(t, err, test.ShouldBeNil)
	return string(out)
}

func TestListenAndServeOneShotAcceptsConfiguredPeer(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 58123
	cfg.AcceptedPeer = "127.0.0.1"

	srv := server.New(cfg, logging.NewTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(ctx, false) }()

	resp := dialAndSend(t, cfg.Port, singleObstacleRequest())
	test.That(t, resp, test.ShouldNotBeEmpty)
	test.That(t, resp[len(resp)-3:], test.ShouldEqual, "FIN")

	select {
	case err := <-errCh:
		test.That(t, err, test.ShouldBeNil)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not return after serving its one shot")
	}
}
