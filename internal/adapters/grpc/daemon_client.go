package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// DaemonClient sends world edits to a running daemon
type DaemonClient struct {
	conn *grpc.ClientConn
}

// NewDaemonClient prepares a connection to socketPath. Dialing is lazy; an
// unreachable daemon surfaces on the first call.
func NewDaemonClient(socketPath string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(
		"unix:"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon socket: %w", err)
	}
	return &DaemonClient{conn: conn}, nil
}

func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *DaemonClient) PlaceBuilding(ctx context.Context, req *commands.PlaceBuildingCommand) (*commands.PlaceBuildingResponse, error) {
	return invoke[commands.PlaceBuildingResponse](ctx, c.conn, "PlaceBuilding", req)
}

func (c *DaemonClient) UpgradeBuilding(ctx context.Context, req *commands.UpgradeBuildingCommand) (*commands.UpgradeBuildingResponse, error) {
	return invoke[commands.UpgradeBuildingResponse](ctx, c.conn, "UpgradeBuilding", req)
}

func (c *DaemonClient) DemolishBuilding(ctx context.Context, req *commands.DemolishBuildingCommand) (*commands.DemolishBuildingResponse, error) {
	return invoke[commands.DemolishBuildingResponse](ctx, c.conn, "DemolishBuilding", req)
}

func (c *DaemonClient) TakeFromStorage(ctx context.Context, req *commands.TakeFromStorageCommand) (*commands.TakeFromStorageResponse, error) {
	return invoke[commands.TakeFromStorageResponse](ctx, c.conn, "TakeFromStorage", req)
}

func (c *DaemonClient) GetWorldStatus(ctx context.Context, req *queries.GetWorldStatusQuery) (*queries.GetWorldStatusResponse, error) {
	return invoke[queries.GetWorldStatusResponse](ctx, c.conn, "GetWorldStatus", req)
}

// Send lets the client stand in for a local mediator for the requests the
// daemon serves
func (c *DaemonClient) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch req := request.(type) {
	case *commands.PlaceBuildingCommand:
		return c.PlaceBuilding(ctx, req)
	case *commands.UpgradeBuildingCommand:
		return c.UpgradeBuilding(ctx, req)
	case *commands.DemolishBuildingCommand:
		return c.DemolishBuilding(ctx, req)
	case *commands.TakeFromStorageCommand:
		return c.TakeFromStorage(ctx, req)
	case *queries.GetWorldStatusQuery:
		return c.GetWorldStatus(ctx, req)
	default:
		return nil, fmt.Errorf("%T is not served by the daemon", request)
	}
}

func invoke[Resp any](ctx context.Context, conn *grpc.ClientConn, method string, req any) (*Resp, error) {
	out := new(Resp)
	if err := conn.Invoke(ctx, fullMethod(method), req, out); err != nil {
		return nil, fromStatus(err)
	}
	return out, nil
}

// fromStatus unwraps the daemon's message so errors read the same as local ones
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() == codes.Unavailable {
		return fmt.Errorf("daemon unreachable: %s", st.Message())
	}
	return errors.New(st.Message())
}
