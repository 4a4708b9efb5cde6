package protocol

import "go-surface/protocol/wire"

func init() {
	entry[DeviceSelect]("DeviceSelect", wire.Binary, ToHost)
	entry[DeviceState]("DeviceState", wire.Binary, ToHost)
	entry[DevicePageSelect]("DevicePageSelect", wire.Binary, ToHost)
	entry[RemoteControlValue]("RemoteControlValue", wire.Binary, ToHost)
	entry[RemoteControlTouch]("RemoteControlTouch", wire.Binary, ToHost)
	entry[RemoteControlRestoreAutomation]("RemoteControlRestoreAutomation", wire.Binary, ToHost)
	entry[EnterDeviceChild]("EnterDeviceChild", wire.Binary, ToHost)
	entry[ExitToParent]("ExitToParent", wire.Binary, ToHost)
	entry[ViewState]("ViewState", wire.Binary, ToHost)
	entry[RequestDeviceListWindow]("RequestDeviceListWindow", wire.Binary, ToHost)
	entry[RequestDevicePageNamesWindow]("RequestDevicePageNamesWindow", wire.Binary, ToHost)
	entry[RequestDeviceChildren]("RequestDeviceChildren", wire.Binary, ToHost)

	entry[DeviceListWindow]("DeviceListWindow", wire.Binary, ToController)
	entry[DevicePageNamesWindow]("DevicePageNamesWindow", wire.Binary, ToController)
	entry[DeviceChildren]("DeviceChildren", wire.Binary, ToController)
	entry[DeviceChange]("DeviceChange", wire.Binary, ToController)
	entry[DevicePageChange]("DevicePageChange", wire.Binary, ToController)
	entry[DeviceChangeHeader]("DeviceChangeHeader", wire.Binary, ToController)
	entry[DeviceEnabledState]("DeviceEnabledState", wire.Binary, ToController)
	entry[RemoteControlUpdate]("RemoteControlUpdate", wire.Binary, ToController)
	entry[RemoteControlDiscreteValues]("RemoteControlDiscreteValues", wire.Binary, ToController)
	entry[RemoteControlValueState]("RemoteControlValueState", wire.Binary, ToController)
	entry[RemoteControlNameChange]("RemoteControlNameChange", wire.Binary, ToController)
	entry[RemoteControlHasAutomationChange]("RemoteControlHasAutomationChange", wire.Binary, ToController)
	entry[RemoteControlIsModulatedChange]("RemoteControlIsModulatedChange", wire.Binary, ToController)
	entry[RemoteControlOriginChange]("RemoteControlOriginChange", wire.Binary, ToController)
	entry[RemoteControlModulatedValueChange]("RemoteControlModulatedValueChange", wire.Binary, ToController)
	entry[RemoteControlsBatch]("RemoteControlsBatch", wire.Binary, ToController)
}

type DeviceSelect struct {
	DeviceIndex uint8
}

func (*DeviceSelect) ID() MessageID { return MsgDeviceSelect }
func (m *DeviceSelect) walk(s wire.Stream) { s.Uint8(&m.DeviceIndex) }

// DeviceState asks the host to enable or bypass a device.
type DeviceState struct {
	DeviceIndex uint8
	Enabled     bool
}

func (*DeviceState) ID() MessageID { return MsgDeviceState }
func (m *DeviceState) walk(s wire.Stream) {
	s.Uint8(&m.DeviceIndex)
	s.Bool(&m.Enabled)
}

type DevicePageSelect struct {
	PageIndex uint8
}

func (*DevicePageSelect) ID() MessageID { return MsgDevicePageSelect }
func (m *DevicePageSelect) walk(s wire.Stream) { s.Uint8(&m.PageIndex) }

// RemoteControlValue is a local turn forwarded to the host.
type RemoteControlValue struct {
	Index uint8
	Value float32
}

func (*RemoteControlValue) ID() MessageID { return MsgRemoteControlValue }
func (m *RemoteControlValue) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Float32(&m.Value)
}

type RemoteControlTouch struct {
	Index   uint8
	Touched bool
}

func (*RemoteControlTouch) ID() MessageID { return MsgRemoteControlTouch }
func (m *RemoteControlTouch) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Bool(&m.Touched)
}

type RemoteControlRestoreAutomation struct {
	Index uint8
}

func (*RemoteControlRestoreAutomation) ID() MessageID { return MsgRemoteControlRestoreAutomation }
func (m *RemoteControlRestoreAutomation) walk(s wire.Stream) { s.Uint8(&m.Index) }

type EnterDeviceChild struct {
	DeviceIndex uint8
	ChildType   uint8
	ChildIndex  uint8
}

func (*EnterDeviceChild) ID() MessageID { return MsgEnterDeviceChild }
func (m *EnterDeviceChild) walk(s wire.Stream) {
	s.Uint8(&m.DeviceIndex)
	s.Uint8(&m.ChildType)
	s.Uint8(&m.ChildIndex)
}

type ExitToParent struct{}

func (*ExitToParent) ID() MessageID { return MsgExitToParent }
func (*ExitToParent) walk(wire.Stream) {}

// ViewState tells the host which view is in front and whether a selector
// overlay is open, so it can throttle unrelated notifications.
type ViewState struct {
	ViewType       uint8
	SelectorActive bool
}

func (*ViewState) ID() MessageID { return MsgViewState }
func (m *ViewState) walk(s wire.Stream) {
	s.Uint8(&m.ViewType)
	s.Bool(&m.SelectorActive)
}

type RequestDeviceListWindow struct {
	StartIndex uint8
}

func (*RequestDeviceListWindow) ID() MessageID { return MsgRequestDeviceListWindow }
func (m *RequestDeviceListWindow) walk(s wire.Stream) { s.Uint8(&m.StartIndex) }

type RequestDevicePageNamesWindow struct {
	StartIndex uint8
}

func (*RequestDevicePageNamesWindow) ID() MessageID { return MsgRequestDevicePageNamesWindow }
func (m *RequestDevicePageNamesWindow) walk(s wire.Stream) { s.Uint8(&m.StartIndex) }

type RequestDeviceChildren struct {
	DeviceIndex uint8
	ChildType   uint8
}

func (*RequestDeviceChildren) ID() MessageID { return MsgRequestDeviceChildren }
func (m *RequestDeviceChildren) walk(s wire.Stream) {
	s.Uint8(&m.DeviceIndex)
	s.Uint8(&m.ChildType)
}

// DeviceListWindow is one window of the device chain. Cursor is the raw
// index of the selected device; Total counts every device in the chain.
type DeviceListWindow struct {
	Total      uint8
	Start      uint8
	Cursor     uint8
	Nested     bool
	ParentName string
	Devices    []DeviceEntry
}

func (*DeviceListWindow) ID() MessageID { return MsgDeviceListWindow }
func (m *DeviceListWindow) walk(s wire.Stream) {
	s.Uint8(&m.Total)
	s.Uint8(&m.Start)
	s.Uint8(&m.Cursor)
	s.Bool(&m.Nested)
	s.String(&m.ParentName)
	wire.Seq(s, &m.Devices, WindowSize, walker[DeviceEntry]())
}

type DevicePageNamesWindow struct {
	Total  uint8
	Start  uint8
	Cursor uint8
	Names  []string
}

func (*DevicePageNamesWindow) ID() MessageID { return MsgDevicePageNamesWindow }
func (m *DevicePageNamesWindow) walk(s wire.Stream) {
	s.Uint8(&m.Total)
	s.Uint8(&m.Start)
	s.Uint8(&m.Cursor)
	wire.Seq(s, &m.Names, WindowSize, wire.Stream.String)
}

type DeviceChildren struct {
	DeviceIndex uint8
	ChildType   uint8
	Total       uint8
	Children    []ChildEntry
}

func (*DeviceChildren) ID() MessageID { return MsgDeviceChildren }
func (m *DeviceChildren) walk(s wire.Stream) {
	s.Uint8(&m.DeviceIndex)
	s.Uint8(&m.ChildType)
	s.Uint8(&m.Total)
	wire.Seq(s, &m.Children, WindowSize, walker[ChildEntry]())
}

// DeviceChange carries a complete device transition: identity, page and
// all remote controls.
type DeviceChange struct {
	TrackName  string
	DeviceName string
	Enabled    bool
	Page       PageInfo
	Controls   []RemoteControl
}

func (*DeviceChange) ID() MessageID { return MsgDeviceChange }
func (m *DeviceChange) walk(s wire.Stream) {
	s.String(&m.TrackName)
	s.String(&m.DeviceName)
	s.Bool(&m.Enabled)
	m.Page.walk(s)
	wire.Seq(s, &m.Controls, ParameterCount, walker[RemoteControl]())
}

type DevicePageChange struct {
	Page     PageInfo
	Controls []RemoteControl
}

func (*DevicePageChange) ID() MessageID { return MsgDevicePageChange }
func (m *DevicePageChange) walk(s wire.Stream) {
	m.Page.walk(s)
	wire.Seq(s, &m.Controls, ParameterCount, walker[RemoteControl]())
}

// DeviceChangeHeader announces a device transition ahead of the per-slot
// updates that follow it.
type DeviceChangeHeader struct {
	DeviceName string
	Enabled    bool
	Type       uint8
	Page       PageInfo
	ChildTypes [ChildTypeCount]uint8
}

func (*DeviceChangeHeader) ID() MessageID { return MsgDeviceChangeHeader }
func (m *DeviceChangeHeader) walk(s wire.Stream) {
	s.String(&m.DeviceName)
	s.Bool(&m.Enabled)
	s.Uint8(&m.Type)
	m.Page.walk(s)
	childTypes(s, &m.ChildTypes)
}

// DeviceEnabledState reports a device's state by raw list index.
type DeviceEnabledState struct {
	DeviceIndex uint8
	Enabled     bool
}

func (*DeviceEnabledState) ID() MessageID { return MsgDeviceEnabledState }
func (m *DeviceEnabledState) walk(s wire.Stream) {
	s.Uint8(&m.DeviceIndex)
	s.Bool(&m.Enabled)
}

// RemoteControlUpdate carries the metadata of a single slot. Option names
// follow separately in RemoteControlDiscreteValues.
type RemoteControlUpdate struct {
	Index         uint8
	Name          string
	Value         float32
	Display       string
	Origin        float32
	Exists        bool
	Type          ParameterType
	DiscreteCount int16
	OptionIndex   uint8
	HasAutomation bool
	Modulated     float32
}

func (*RemoteControlUpdate) ID() MessageID { return MsgRemoteControlUpdate }
func (m *RemoteControlUpdate) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.String(&m.Name)
	s.Float32(&m.Value)
	s.String(&m.Display)
	s.Float32(&m.Origin)
	s.Bool(&m.Exists)
	s.Uint8((*uint8)(&m.Type))
	s.Int16(&m.DiscreteCount)
	s.Uint8(&m.OptionIndex)
	s.Bool(&m.HasAutomation)
	s.Float32(&m.Modulated)
}

type RemoteControlDiscreteValues struct {
	Index       uint8
	OptionNames []string
	OptionIndex uint8
}

func (*RemoteControlDiscreteValues) ID() MessageID { return MsgRemoteControlDiscreteValues }
func (m *RemoteControlDiscreteValues) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	wire.Seq(s, &m.OptionNames, OptionNameCap, wire.Stream.String)
	s.Uint8(&m.OptionIndex)
}

// RemoteControlValueState is the host's value confirmation for one slot.
type RemoteControlValueState struct {
	Index   uint8
	Value   float32
	Display string
}

func (*RemoteControlValueState) ID() MessageID { return MsgRemoteControlValueState }
func (m *RemoteControlValueState) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Float32(&m.Value)
	s.String(&m.Display)
}

type RemoteControlNameChange struct {
	Index uint8
	Name  string
}

func (*RemoteControlNameChange) ID() MessageID { return MsgRemoteControlNameChange }
func (m *RemoteControlNameChange) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.String(&m.Name)
}

type RemoteControlHasAutomationChange struct {
	Index         uint8
	HasAutomation bool
}

func (*RemoteControlHasAutomationChange) ID() MessageID { return MsgRemoteControlHasAutomationChange }
func (m *RemoteControlHasAutomationChange) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Bool(&m.HasAutomation)
}

type RemoteControlIsModulatedChange struct {
	Index       uint8
	IsModulated bool
}

func (*RemoteControlIsModulatedChange) ID() MessageID { return MsgRemoteControlIsModulatedChange }
func (m *RemoteControlIsModulatedChange) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Bool(&m.IsModulated)
}

type RemoteControlOriginChange struct {
	Index  uint8
	Origin float32
}

func (*RemoteControlOriginChange) ID() MessageID { return MsgRemoteControlOriginChange }
func (m *RemoteControlOriginChange) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Float32(&m.Origin)
}

type RemoteControlModulatedValueChange struct {
	Index     uint8
	Modulated float32
}

func (*RemoteControlModulatedValueChange) ID() MessageID { return MsgRemoteControlModulatedValueChange }
func (m *RemoteControlModulatedValueChange) walk(s wire.Stream) {
	s.Uint8(&m.Index)
	s.Float32(&m.Modulated)
}

// RemoteControlsBatch coalesces value updates for all eight slots. Bit i of
// Dirty marks slot i as carrying a new value; bit i of Echo marks it as a
// confirmation of a controller request.
type RemoteControlsBatch struct {
	Seq        uint8
	Dirty      uint8
	Echo       uint8
	Automation uint8
	Values     [ParameterCount]float32
	Modulated  [ParameterCount]float32
	Displays   [ParameterCount]string
}

func (*RemoteControlsBatch) ID() MessageID { return MsgRemoteControlsBatch }
func (m *RemoteControlsBatch) walk(s wire.Stream) {
	s.Uint8(&m.Seq)
	s.Uint8(&m.Dirty)
	s.Uint8(&m.Echo)
	s.Uint8(&m.Automation)
	for i := range m.Values {
		s.Norm8(&m.Values[i])
	}
	for i := range m.Modulated {
		s.Norm8(&m.Modulated[i])
	}
	for i := range m.Displays {
		s.String(&m.Displays[i])
	}
}
