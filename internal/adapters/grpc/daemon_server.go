package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/placement"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// DaemonServer serves world control requests from the CLI on a unix socket
type DaemonServer struct {
	grpcServer *grpc.Server
	listener   net.Listener
	socketPath string
}

// NewDaemonServer listens on socketPath, replacing a stale socket file left by a
// crashed daemon. Requests are dispatched through m with logger in their context.
func NewDaemonServer(m mediator.Mediator, logger logging.Logger, socketPath string) (*DaemonServer, error) {
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
	}

	// Owner only: the socket edits the world
	if err := os.Chmod(socketPath, 0o600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(requestContext(logger)))
	RegisterWorldControlServer(grpcServer, &worldControl{mediator: m})

	return &DaemonServer{
		grpcServer: grpcServer,
		listener:   listener,
		socketPath: socketPath,
	}, nil
}

// Serve blocks until Stop is called
func (s *DaemonServer) Serve() error {
	fmt.Printf("World control listening on unix socket: %s\n", s.socketPath)
	if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server error: %w", err)
	}
	return nil
}

// Stop finishes in-flight requests, refusing new ones, then removes the socket.
// A request still running after timeout is cut off.
func (s *DaemonServer) Stop(timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		s.grpcServer.Stop()
	}
	_ = os.Remove(s.socketPath)
}

func requestContext(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(logging.WithLogger(ctx, logger), req)
	}
}

// worldControl maps each RPC onto the matching mediator request
type worldControl struct {
	mediator mediator.Mediator
}

func (c *worldControl) PlaceBuilding(ctx context.Context, req *commands.PlaceBuildingCommand) (*commands.PlaceBuildingResponse, error) {
	return dispatch[*commands.PlaceBuildingResponse](ctx, c.mediator, req)
}

func (c *worldControl) UpgradeBuilding(ctx context.Context, req *commands.UpgradeBuildingCommand) (*commands.UpgradeBuildingResponse, error) {
	return dispatch[*commands.UpgradeBuildingResponse](ctx, c.mediator, req)
}

func (c *worldControl) DemolishBuilding(ctx context.Context, req *commands.DemolishBuildingCommand) (*commands.DemolishBuildingResponse, error) {
	return dispatch[*commands.DemolishBuildingResponse](ctx, c.mediator, req)
}

func (c *worldControl) TakeFromStorage(ctx context.Context, req *commands.TakeFromStorageCommand) (*commands.TakeFromStorageResponse, error) {
	return dispatch[*commands.TakeFromStorageResponse](ctx, c.mediator, req)
}

func (c *worldControl) GetWorldStatus(ctx context.Context, req *queries.GetWorldStatusQuery) (*queries.GetWorldStatusResponse, error) {
	return dispatch[*queries.GetWorldStatusResponse](ctx, c.mediator, req)
}

func dispatch[R any](ctx context.Context, m mediator.Mediator, request mediator.Request) (R, error) {
	var zero R
	resp, err := m.Send(ctx, request)
	if err != nil {
		return zero, toStatus(err)
	}
	typed, ok := resp.(R)
	if !ok {
		return zero, status.Errorf(codes.Internal, "unexpected response type %T", resp)
	}
	return typed, nil
}

// toStatus keeps the domain message intact; the CLI prints it as is
func toStatus(err error) error {
	var (
		notFound     *shared.NotFoundError
		unknownDef   *catalog.UnknownDefinitionError
		invalid      *shared.ValidationError
		short        *ledger.InsufficientResourcesError
		badPlacement *placement.InvalidPlacementError
		unavailable  *placement.UnavailableError
		noUpgrade    *building.UpgradeUnavailableError
		keep         *building.NotDemolishableError
	)
	code := codes.Unknown
	switch {
	case errors.As(err, &notFound), errors.As(err, &unknownDef):
		code = codes.NotFound
	case errors.As(err, &invalid):
		code = codes.InvalidArgument
	case errors.As(err, &short), errors.As(err, &badPlacement), errors.As(err, &unavailable),
		errors.As(err, &noUpgrade), errors.As(err, &keep):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}
