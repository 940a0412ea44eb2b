package server_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/photonav/config"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/server"
)

func singleObstacleRequest() server.Request {
	return server.Request{
		Type: "START_TASK",
		Data: server.RequestData{
			Task:  "EXPLORATION",
			Robot: server.RobotWire{ID: "R", X: 1, Y: 1, Dir: "N"},
			Obstacles: []server.ObstacleWire{
				{ID: mustID(t1), X: 7, Y: 7, Dir: "N"},
			},
		},
	}
}

var t1 = `1`

func mustID(raw string) (id server.WireID) {
	_ = id.UnmarshalJSON([]byte(raw))
	return id
}

func TestPlanSingleObstacleEndsWithSnapAndFin(t *testing.T) {
	cfg := config.Default()
	res, err := server.Plan(context.Background(), cfg, singleObstacleRequest(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(res.Tokens), test.ShouldBeGreaterThan, 1)
	test.That(t, res.Tokens[len(res.Tokens)-1], test.ShouldEqual, "FIN")
	test.That(t, res.Tokens[len(res.Tokens)-2], test.ShouldEqual, "SNAP1")
}

func TestPlanBadRequestOnUnknownTask(t *testing.T) {
	cfg := config.Default()
	req := singleObstacleRequest()
	req.Data.Task = "FOO"
	_, err := server.Plan(context.Background(), cfg, req, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, server.ErrBadRequest), test.ShouldBeTrue)
}

func TestPlanBadRequestOnInvalidDirection(t *testing.T) {
	cfg := config.Default()
	req := singleObstacleRequest()
	req.Data.Robot.Dir = "NE"
	_, err := server.Plan(context.Background(), cfg, req, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlanUnreachableOnInfeasibleObstacle(t *testing.T) {
	cfg := config.Default()
	req := server.Request{
		Type: "START_TASK",
		Data: server.RequestData{
			Task:  "EXPLORATION",
			Robot: server.RobotWire{ID: "R", X: 1, Y: 1, Dir: "N"},
			Obstacles: []server.ObstacleWire{
				{ID: mustID(`1`), X: 0, Y: 0, Dir: "S"},
			},
		},
	}
	_, err := server.Plan(context.Background(), cfg, req, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldEqual, server.ErrUnreachable)
}

func TestPlanTimesOutUnderAnExpiredDeadline(t *testing.T) {
	cfg := config.Default()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	_, err := server.Plan(ctx, cfg, singleObstacleRequest(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldEqual, server.ErrTimeout)
}
