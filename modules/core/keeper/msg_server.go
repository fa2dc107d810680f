package keeper

import (
	"context"

	metrics "github.com/armon/go-metrics"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/multiversx/mx-ibc-go/modules/core/02-client/types"
	connectiontypes "github.com/multiversx/mx-ibc-go/modules/core/03-connection/types"
	channeltypes "github.com/multiversx/mx-ibc-go/modules/core/04-channel/types"
	"github.com/multiversx/mx-ibc-go/modules/core/exported"
	coremetrics "github.com/multiversx/mx-ibc-go/modules/core/metrics"
	coretypes "github.com/multiversx/mx-ibc-go/modules/core/types"
)

// CreateClient defines a rpc handler method for MsgCreateClient.
func (k *Keeper) CreateClient(goCtx context.Context, msg *clienttypes.MsgCreateClient) (*clienttypes.MsgCreateClientResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var clientID string
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		var err error
		clientID, err = k.ClientKeeper.CreateClient(cacheCtx, msg.ClientType, msg.ClientState, msg.ConsensusState)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &clienttypes.MsgCreateClientResponse{ClientId: clientID}, nil
}

// UpdateClient defines a rpc handler method for MsgUpdateClient.
func (k *Keeper) UpdateClient(goCtx context.Context, msg *clienttypes.MsgUpdateClient) (*clienttypes.MsgUpdateClientResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		return k.ClientKeeper.UpdateClient(cacheCtx, msg.ClientId, msg.ClientMessage)
	})
	if err != nil {
		return nil, err
	}

	return &clienttypes.MsgUpdateClientResponse{}, nil
}

// ConnectionOpenInit defines a rpc handler method for MsgConnectionOpenInit.
func (k *Keeper) ConnectionOpenInit(goCtx context.Context, msg *connectiontypes.MsgConnectionOpenInit) (*connectiontypes.MsgConnectionOpenInitResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var connectionID string
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		var err error
		connectionID, err = k.ConnectionKeeper.ConnOpenInit(cacheCtx, msg.ClientId, msg.Counterparty, msg.Version, msg.DelayPeriod)
		return err
	})
	if err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open init failed")
	}

	return &connectiontypes.MsgConnectionOpenInitResponse{ConnectionId: connectionID}, nil
}

// ConnectionOpenTry defines a rpc handler method for MsgConnectionOpenTry.
func (k *Keeper) ConnectionOpenTry(goCtx context.Context, msg *connectiontypes.MsgConnectionOpenTry) (*connectiontypes.MsgConnectionOpenTryResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var connectionID string
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		var err error
		connectionID, err = k.ConnectionKeeper.ConnOpenTry(
			cacheCtx, msg.Counterparty, msg.DelayPeriod, msg.ClientId, msg.ClientState,
			msg.CounterpartyVersions, msg.ProofInit, msg.ProofClient, msg.ProofConsensus,
			msg.ProofHeight, msg.ConsensusHeight, msg.HostConsensusStateProof,
		)
		return err
	})
	if err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open try failed")
	}

	return &connectiontypes.MsgConnectionOpenTryResponse{ConnectionId: connectionID}, nil
}

// ConnectionOpenAck defines a rpc handler method for MsgConnectionOpenAck.
func (k *Keeper) ConnectionOpenAck(goCtx context.Context, msg *connectiontypes.MsgConnectionOpenAck) (*connectiontypes.MsgConnectionOpenAckResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		return k.ConnectionKeeper.ConnOpenAck(
			cacheCtx, msg.ConnectionId, msg.ClientState, msg.Version, msg.CounterpartyConnectionId,
			msg.ProofTry, msg.ProofClient, msg.ProofConsensus,
			msg.ProofHeight, msg.ConsensusHeight, msg.HostConsensusStateProof,
		)
	})
	if err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open ack failed")
	}

	return &connectiontypes.MsgConnectionOpenAckResponse{}, nil
}

// ConnectionOpenConfirm defines a rpc handler method for MsgConnectionOpenConfirm.
func (k *Keeper) ConnectionOpenConfirm(goCtx context.Context, msg *connectiontypes.MsgConnectionOpenConfirm) (*connectiontypes.MsgConnectionOpenConfirmResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		return k.ConnectionKeeper.ConnOpenConfirm(cacheCtx, msg.ConnectionId, msg.ProofAck, msg.ProofHeight)
	})
	if err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open confirm failed")
	}

	return &connectiontypes.MsgConnectionOpenConfirmResponse{}, nil
}

// ChannelOpenInit defines a rpc handler method for MsgChannelOpenInit.
// The application callback may override the version proposed in the message.
func (k *Keeper) ChannelOpenInit(goCtx context.Context, msg *channeltypes.MsgChannelOpenInit) (*channeltypes.MsgChannelOpenInitResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var channelID, version string
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.PortId)
		if err != nil {
			return err
		}

		channelID, err = k.ChannelKeeper.ChanOpenInit(
			cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, msg.Channel.Counterparty, msg.Channel.Version,
		)
		if err != nil {
			return sdkerrors.Wrap(err, "channel handshake open init failed")
		}

		version, err = cbs.OnChanOpenInit(
			cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, channelID, msg.Channel.Counterparty, msg.Channel.Version,
		)
		if err != nil {
			return sdkerrors.Wrap(err, "channel open init callback failed")
		}

		k.ChannelKeeper.WriteOpenInitChannel(
			cacheCtx, msg.PortId, channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.Channel.Counterparty, version,
		)
		return nil
	})
	if err != nil {
		ctx.Logger().Error("channel open init failed", "port-id", msg.PortId, "error", err.Error())
		return nil, err
	}

	ctx.Logger().Info("channel open init succeeded", "channel-id", channelID, "version", version)

	return &channeltypes.MsgChannelOpenInitResponse{ChannelId: channelID, Version: version}, nil
}

// ChannelOpenTry defines a rpc handler method for MsgChannelOpenTry.
func (k *Keeper) ChannelOpenTry(goCtx context.Context, msg *channeltypes.MsgChannelOpenTry) (*channeltypes.MsgChannelOpenTryResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var channelID, version string
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.PortId)
		if err != nil {
			return err
		}

		channelID, err = k.ChannelKeeper.ChanOpenTry(
			cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
			msg.Channel.Counterparty, msg.CounterpartyVersion, msg.ProofInit, msg.ProofHeight,
		)
		if err != nil {
			return sdkerrors.Wrap(err, "channel handshake open try failed")
		}

		version, err = cbs.OnChanOpenTry(
			cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, channelID, msg.Channel.Counterparty, msg.CounterpartyVersion,
		)
		if err != nil {
			return sdkerrors.Wrap(err, "channel open try callback failed")
		}

		k.ChannelKeeper.WriteOpenTryChannel(
			cacheCtx, msg.PortId, channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.Channel.Counterparty, version,
		)
		return nil
	})
	if err != nil {
		ctx.Logger().Error("channel open try failed", "port-id", msg.PortId, "error", err.Error())
		return nil, err
	}

	ctx.Logger().Info("channel open try succeeded", "channel-id", channelID, "port-id", msg.PortId, "version", version)

	return &channeltypes.MsgChannelOpenTryResponse{ChannelId: channelID, Version: version}, nil
}

// ChannelOpenAck defines a rpc handler method for MsgChannelOpenAck.
func (k *Keeper) ChannelOpenAck(goCtx context.Context, msg *channeltypes.MsgChannelOpenAck) (*channeltypes.MsgChannelOpenAckResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.PortId)
		if err != nil {
			return err
		}

		if err := k.ChannelKeeper.ChanOpenAck(
			cacheCtx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion, msg.CounterpartyChannelId, msg.ProofTry, msg.ProofHeight,
		); err != nil {
			return sdkerrors.Wrap(err, "channel handshake open ack failed")
		}

		if err := cbs.OnChanOpenAck(cacheCtx, msg.PortId, msg.ChannelId, msg.CounterpartyChannelId, msg.CounterpartyVersion); err != nil {
			return sdkerrors.Wrap(err, "channel open ack callback failed")
		}

		k.ChannelKeeper.WriteOpenAckChannel(cacheCtx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion, msg.CounterpartyChannelId)
		return nil
	})
	if err != nil {
		ctx.Logger().Error("channel open ack failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, err
	}

	ctx.Logger().Info("channel open ack succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelOpenAckResponse{}, nil
}

// ChannelOpenConfirm defines a rpc handler method for MsgChannelOpenConfirm.
func (k *Keeper) ChannelOpenConfirm(goCtx context.Context, msg *channeltypes.MsgChannelOpenConfirm) (*channeltypes.MsgChannelOpenConfirmResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.PortId)
		if err != nil {
			return err
		}

		if err := k.ChannelKeeper.ChanOpenConfirm(cacheCtx, msg.PortId, msg.ChannelId, msg.ProofAck, msg.ProofHeight); err != nil {
			return sdkerrors.Wrap(err, "channel handshake open confirm failed")
		}

		if err := cbs.OnChanOpenConfirm(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
			return sdkerrors.Wrap(err, "channel open confirm callback failed")
		}

		k.ChannelKeeper.WriteOpenConfirmChannel(cacheCtx, msg.PortId, msg.ChannelId)
		return nil
	})
	if err != nil {
		ctx.Logger().Error("channel open confirm failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, err
	}

	ctx.Logger().Info("channel open confirm succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelOpenConfirmResponse{}, nil
}

// ChannelCloseInit defines a rpc handler method for MsgChannelCloseInit.
func (k *Keeper) ChannelCloseInit(goCtx context.Context, msg *channeltypes.MsgChannelCloseInit) (*channeltypes.MsgChannelCloseInitResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.PortId)
		if err != nil {
			return err
		}

		if err := cbs.OnChanCloseInit(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
			return sdkerrors.Wrap(err, "channel close init callback failed")
		}

		return sdkerrors.Wrap(k.ChannelKeeper.ChanCloseInit(cacheCtx, msg.PortId, msg.ChannelId), "channel handshake close init failed")
	})
	if err != nil {
		ctx.Logger().Error("channel close init failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, err
	}

	ctx.Logger().Info("channel close init succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelCloseInitResponse{}, nil
}

// ChannelCloseConfirm defines a rpc handler method for MsgChannelCloseConfirm.
func (k *Keeper) ChannelCloseConfirm(goCtx context.Context, msg *channeltypes.MsgChannelCloseConfirm) (*channeltypes.MsgChannelCloseConfirmResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.PortId)
		if err != nil {
			return err
		}

		if err := cbs.OnChanCloseConfirm(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
			return sdkerrors.Wrap(err, "channel close confirm callback failed")
		}

		return sdkerrors.Wrap(
			k.ChannelKeeper.ChanCloseConfirm(cacheCtx, msg.PortId, msg.ChannelId, msg.ProofInit, msg.ProofHeight),
			"channel handshake close confirm failed",
		)
	})
	if err != nil {
		ctx.Logger().Error("channel close confirm failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, err
	}

	ctx.Logger().Info("channel close confirm succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelCloseConfirmResponse{}, nil
}

// SendPacket defines a rpc handler method for MsgSendPacket. The signer must
// own the capability of the source channel.
func (k *Keeper) SendPacket(goCtx context.Context, msg *channeltypes.MsgSendPacket) (*channeltypes.MsgSendPacketResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var sequence uint64
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		var err error
		sequence, err = k.ChannelKeeper.SendPacket(
			cacheCtx, msg.Signer, msg.SourcePort, msg.SourceChannel, msg.TimeoutHeight, msg.TimeoutTimestamp, msg.Data,
		)
		return err
	})
	if err != nil {
		ctx.Logger().Error("send packet failed", "port-id", msg.SourcePort, "channel-id", msg.SourceChannel, "error", err.Error())
		return nil, sdkerrors.Wrap(err, "send packet failed")
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", channeltypes.EventTypeSendPacket},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, msg.SourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, msg.SourceChannel),
		},
	)

	return &channeltypes.MsgSendPacketResponse{Sequence: sequence}, nil
}

// RecvPacket defines a rpc handler method for MsgRecvPacket. The application
// callback runs in its own cached context: its state changes are written only
// for asynchronous or successful acknowledgements, otherwise its events are
// re-emitted as error events. The packet is received in both cases.
func (k *Keeper) RecvPacket(goCtx context.Context, msg *channeltypes.MsgRecvPacket) (*channeltypes.MsgRecvPacketResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var ackBz []byte
	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.Packet.DestinationPort)
		if err != nil {
			return err
		}

		if err := k.ChannelKeeper.RecvPacket(cacheCtx, msg.Packet, msg.ProofCommitment, msg.ProofHeight); err != nil {
			return sdkerrors.Wrap(err, "receive packet verification failed")
		}

		appCtx, writeFn := cacheCtx.CacheContext()
		appCtx = appCtx.WithEventManager(sdk.NewEventManager())

		ack := cbs.OnRecvPacket(appCtx, msg.Packet, msg.Signer)
		if ack == nil || ack.Success() {
			writeFn()
			cacheCtx.EventManager().EmitEvents(appCtx.EventManager().Events())
		} else {
			cacheCtx.EventManager().EmitEvents(coretypes.ConvertToErrorEvents(appCtx.EventManager().Events()))
		}

		// a nil or empty acknowledgement is written later through WriteAcknowledgement
		if ack != nil && len(ack.Acknowledgement()) > 0 {
			if err := k.ChannelKeeper.WriteReceivedAcknowledgement(cacheCtx, msg.Packet, ack); err != nil {
				return err
			}
			ackBz = ack.Acknowledgement()
		}

		return nil
	})
	if err != nil {
		ctx.Logger().Error("receive packet failed", "port-id", msg.Packet.DestinationPort, "channel-id", msg.Packet.DestinationChannel, "error", err.Error())
		return nil, err
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", channeltypes.EventTypeRecvPacket},
		1,
		packetLabels(msg.Packet),
	)

	ctx.Logger().Info("receive packet callback succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "sequence", msg.Packet.Sequence)

	return &channeltypes.MsgRecvPacketResponse{Acknowledgement: ackBz}, nil
}

// WriteAcknowledgement defines a rpc handler method for MsgWriteAcknowledgement.
// It completes an asynchronous receive. The signer must own the capability of
// the destination channel.
func (k *Keeper) WriteAcknowledgement(goCtx context.Context, msg *channeltypes.MsgWriteAcknowledgement) (*channeltypes.MsgWriteAcknowledgementResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		return k.ChannelKeeper.WriteAcknowledgement(cacheCtx, msg.Signer, msg.Packet, msg.Acknowledgement)
	})
	if err != nil {
		ctx.Logger().Error("write acknowledgement failed", "port-id", msg.Packet.DestinationPort, "channel-id", msg.Packet.DestinationChannel, "error", err.Error())
		return nil, sdkerrors.Wrap(err, "write acknowledgement failed")
	}

	return &channeltypes.MsgWriteAcknowledgementResponse{}, nil
}

// Acknowledgement defines a rpc handler method for MsgAcknowledgement.
func (k *Keeper) Acknowledgement(goCtx context.Context, msg *channeltypes.MsgAcknowledgement) (*channeltypes.MsgAcknowledgementResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.Packet.SourcePort)
		if err != nil {
			return err
		}

		if err := k.ChannelKeeper.AcknowledgePacket(cacheCtx, msg.Packet, msg.Acknowledgement, msg.ProofAcked, msg.ProofHeight); err != nil {
			return sdkerrors.Wrap(err, "acknowledge packet verification failed")
		}

		return sdkerrors.Wrap(
			cbs.OnAcknowledgementPacket(cacheCtx, msg.Packet, msg.Acknowledgement, msg.Signer),
			"acknowledge packet callback failed",
		)
	})
	if err != nil {
		ctx.Logger().Error("acknowledgement failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", err.Error())
		return nil, err
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", channeltypes.EventTypeAcknowledgePacket},
		1,
		packetLabels(msg.Packet),
	)

	ctx.Logger().Info("acknowledgement succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "sequence", msg.Packet.Sequence)

	return &channeltypes.MsgAcknowledgementResponse{}, nil
}

// Timeout defines a rpc handler method for MsgTimeout.
func (k *Keeper) Timeout(goCtx context.Context, msg *channeltypes.MsgTimeout) (*channeltypes.MsgTimeoutResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.Packet.SourcePort)
		if err != nil {
			return err
		}

		if err := k.ChannelKeeper.TimeoutPacket(cacheCtx, msg.Packet, msg.ProofUnreceived, msg.ProofHeight, msg.NextSequenceRecv); err != nil {
			return sdkerrors.Wrap(err, "timeout packet verification failed")
		}

		return sdkerrors.Wrap(cbs.OnTimeoutPacket(cacheCtx, msg.Packet, msg.Signer), "timeout packet callback failed")
	})
	if err != nil {
		ctx.Logger().Error("timeout failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", err.Error())
		return nil, err
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "timeout", "packet"},
		1,
		append(packetLabels(msg.Packet), telemetry.NewLabel(coremetrics.LabelTimeoutType, timeoutType(msg.Packet, msg.ProofHeight))),
	)

	ctx.Logger().Info("timeout succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "sequence", msg.Packet.Sequence)

	return &channeltypes.MsgTimeoutResponse{}, nil
}

// TimeoutOnClose defines a rpc handler method for MsgTimeoutOnClose.
func (k *Keeper) TimeoutOnClose(goCtx context.Context, msg *channeltypes.MsgTimeoutOnClose) (*channeltypes.MsgTimeoutOnCloseResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := atomic(ctx, func(cacheCtx sdk.Context) error {
		cbs, err := k.PortKeeper.Route(cacheCtx, msg.Packet.SourcePort)
		if err != nil {
			return err
		}

		if err := k.ChannelKeeper.TimeoutOnClose(
			cacheCtx, msg.Packet, msg.ProofUnreceived, msg.ProofClose, msg.ProofHeight, msg.NextSequenceRecv,
		); err != nil {
			return sdkerrors.Wrap(err, "timeout on close packet verification failed")
		}

		// the application treats a close like any other timeout
		return sdkerrors.Wrap(cbs.OnTimeoutPacket(cacheCtx, msg.Packet, msg.Signer), "timeout packet callback failed")
	})
	if err != nil {
		ctx.Logger().Error("timeout on close failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", err.Error())
		return nil, err
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "timeout", "packet"},
		1,
		append(packetLabels(msg.Packet), telemetry.NewLabel(coremetrics.LabelTimeoutType, "channel-closed")),
	)

	ctx.Logger().Info("timeout on close succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "sequence", msg.Packet.Sequence)

	return &channeltypes.MsgTimeoutOnCloseResponse{}, nil
}

func packetLabels(packet channeltypes.Packet) []metrics.Label {
	return []metrics.Label{
		telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
		telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
		telemetry.NewLabel(coremetrics.LabelDestinationPort, packet.DestinationPort),
		telemetry.NewLabel(coremetrics.LabelDestinationChannel, packet.DestinationChannel),
	}
}

func timeoutType(packet channeltypes.Packet, proofHeight exported.Height) string {
	if !packet.TimeoutHeight.IsZero() && packet.TimeoutHeight.LTE(proofHeight) {
		return "height"
	}
	return "timestamp"
}
