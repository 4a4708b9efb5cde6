package protocol

// MessageID is the tag byte that precedes every payload. IDs are dense and
// start at zero.
type MessageID uint8

// Device commands and queries.
const (
	MsgDeviceSelect MessageID = iota
	MsgDeviceState
	MsgDevicePageSelect
	MsgRemoteControlValue
	MsgRemoteControlTouch
	MsgRemoteControlRestoreAutomation
	MsgEnterDeviceChild
	MsgExitToParent
	MsgViewState
	MsgRequestDeviceListWindow
	MsgRequestDevicePageNamesWindow
	MsgRequestDeviceChildren

	// Device notifications.
	MsgDeviceListWindow
	MsgDevicePageNamesWindow
	MsgDeviceChildren
	MsgDeviceChange
	MsgDevicePageChange
	MsgDeviceChangeHeader
	MsgDeviceEnabledState
	MsgRemoteControlUpdate
	MsgRemoteControlDiscreteValues
	MsgRemoteControlValueState
	MsgRemoteControlNameChange
	MsgRemoteControlHasAutomationChange
	MsgRemoteControlIsModulatedChange
	MsgRemoteControlOriginChange
	MsgRemoteControlModulatedValueChange
	MsgRemoteControlsBatch

	// Last clicked parameter.
	MsgLastClickedUpdate
	MsgLastClickedValueChange
	MsgLastClickedTouch

	// Host lifecycle.
	MsgRequestHostStatus
	MsgHostInitialized
	MsgHostDeactivated

	// Track commands and queries.
	MsgTrackSelect
	MsgEnterTrackGroup
	MsgExitTrackGroup
	MsgTrackMute
	MsgTrackSolo
	MsgTrackActivate
	MsgTrackArm
	MsgTrackVolume
	MsgTrackPan
	MsgTrackVolumeTouch
	MsgTrackPanTouch
	MsgTrackSendValue
	MsgTrackSendEnabled
	MsgTrackSendMode
	MsgTrackSendTouch
	MsgSelectMixSend
	MsgRequestTrackListWindow
	MsgRequestTrackSendList
	MsgRequestSendDestinations

	// Track responses and notifications.
	MsgTrackListWindow
	MsgTrackSendList
	MsgSendDestinationsList
	MsgTrackChange
	MsgTrackMuteState
	MsgTrackSoloState
	MsgTrackArmState
	MsgTrackMutedBySoloState
	MsgTrackVolumeState
	MsgTrackPanState
	MsgTrackVolumeHasAutomationState
	MsgTrackPanHasAutomationState
	MsgTrackVolumeModulatedValueState
	MsgTrackPanModulatedValueState
	MsgTrackSendValueState
	MsgTrackSendEnabledState
	MsgTrackSendModeState
	MsgTrackSendPreFaderState
	MsgTrackSendHasAutomationState
	MsgTrackSendModulatedValueState

	// Transport.
	MsgTransportPlay
	MsgTransportRecord
	MsgTransportStop
	MsgTransportTempo
	MsgTransportAutomationOverrideActive
	MsgTransportArrangerAutomationWrite
	MsgTransportClipLauncherAutomationWrite
	MsgTransportAutomationWriteMode
	MsgResetAutomationOverrides
	MsgTransportArrangerOverdub
	MsgTransportClipLauncherOverdub

	// Legacy full track list.
	MsgRequestTrackList
	MsgTrackList

	messageCount
)

func (id MessageID) String() string {
	if info, ok := Lookup(id); ok {
		return info.Name
	}
	return "Unknown"
}
