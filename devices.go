package scarlettd

// devices.go is the device registry (component C1): static, per-USB-ID
// tables describing port counts, mux layout and configuration item
// offsets. Nothing here touches the wire; it is consulted by ports.go,
// routing.go, mixer.go and swconfig.go to interpret device-specific
// constants.

// ConfigItem names an entry in a device's configuration space.
type ConfigItem int

const (
	ConfigButtons ConfigItem = iota
	ConfigLineOutVolume
	ConfigSwHwSwitch
	ConfigLevelSwitch
	ConfigPadSwitch
	ConfigAirSwitch
	ConfigSPDIFSwitch
	Config48VSwitch
	ConfigMSDSwitch
	ConfigMainAltSpeakerSwitch
	ConfigSpeakerSwitchingSwitch
	ConfigGainHaloEnable
	ConfigGainHaloLEDs
	ConfigGainHaloLevels
	ConfigMixTalkback
	ConfigRetain48V
	ConfigMutes
	ConfigDirectMonitorSwitch
	ConfigMasterVolume
	configItemCount
)

// ConfigLayout is one entry in a device's configuration-space table: where
// a config item lives, how big it is, and which activation code commits it.
type ConfigLayout struct {
	Offset   uint16
	Size     uint8
	Activate uint8 // 0 means "never needs a DATA_CMD activation"
}

// PortLayout describes one port type's presence for a device: its wire-ID
// base and how many ports of that type exist per PortDirection/band.
type PortLayout struct {
	WireBase     WireID
	Count        [portDirectionCount]int
	SrcFormat    string // printf-style, applied to the input side
	SrcNumOffset int    // added to the 0-based index before formatting
	DstFormat    string // printf-style, applied to the output side
	DstRemap     []int  // optional dst index remap table, nil if none
}

// NamedPort overrides the generated name for one specific port.
type NamedPort struct {
	Direction PortDirection
	Type      PortType
	Index     int
	Name      string
}

// Device is the complete static descriptor for one USB product ID.
type Device struct {
	USBVendor, USBProduct uint16
	Name                  string

	LineOutHWVol bool
	ButtonCount  int

	LevelInputCount   int
	LevelInputOffset  int
	LevelInputBitmask bool

	PadInputCount int

	AirInputCount   int
	AirInputBitmask bool

	Phantom48VCount int
	HasRetain48V    bool
	HasMSDMode      bool

	HasSpeakerSwitching bool
	HasDirectMonitor    int // 0=absent, 1=boolean, 2=off/mono/stereo enum
	HasTalkback         bool

	HasMux     bool
	HasMixer   bool
	HasSwConfig bool
	HasMeters  bool
	HasHWVolume bool

	GainHalosCount int
	ConfigSize     int // 0 means "large/sw-config-backed, no fixed size"

	MuxSize [portDirectionCount]int
	Ports   [portTypeCount]PortLayout
	Config  [configItemCount]ConfigLayout
	Names   []NamedPort
}

// scarlettProConfig is the configuration-space layout shared by the Pro
// class (6i6/18i8/18i20 Gen2 and 4i4/8i6/18i8/18i20 Gen3) -- offsets as read back from the unit's
// config space, not the software-config blob.
var scarlettProConfig = [configItemCount]ConfigLayout{
	ConfigButtons:                  {Offset: 0x31, Size: 1, Activate: 2},
	ConfigLineOutVolume:            {Offset: 0x34, Size: 2, Activate: 1},
	ConfigSwHwSwitch:               {Offset: 0x66, Size: 1, Activate: 3},
	ConfigLevelSwitch:              {Offset: 0x7c, Size: 1, Activate: 7},
	ConfigPadSwitch:                {Offset: 0x84, Size: 1, Activate: 8},
	ConfigAirSwitch:                {Offset: 0x8c, Size: 1, Activate: 8},
	ConfigSPDIFSwitch:              {Offset: 0x94, Size: 1, Activate: 6},
	Config48VSwitch:                {Offset: 0x9c, Size: 1, Activate: 8},
	ConfigMSDSwitch:                {Offset: 0x9d, Size: 1, Activate: 6},
	ConfigMainAltSpeakerSwitch:     {Offset: 0x9f, Size: 1, Activate: 10},
	ConfigSpeakerSwitchingSwitch:   {Offset: 0xa0, Size: 1, Activate: 10},
	ConfigGainHaloEnable:           {Offset: 0xa1, Size: 1, Activate: 9},
	ConfigGainHaloLEDs:             {Offset: 0xa2, Size: 1, Activate: 9},
	ConfigGainHaloLevels:           {Offset: 0xa6, Size: 1, Activate: 11},
	ConfigMixTalkback:              {Offset: 0xb0, Size: 2, Activate: 10},
	ConfigRetain48V:                {Offset: 0x9e, Size: 1, Activate: 0},
	ConfigMutes:                    {Offset: 0x5c, Size: 1, Activate: 1},
	ConfigMasterVolume:             {Offset: 0x76, Size: 2, Activate: 0},
}

// scarlettHomeConfig is the configuration-space layout for the home
// segment (Solo/2i2 Gen3).
var scarlettHomeConfig = [configItemCount]ConfigLayout{
	ConfigRetain48V:          {Offset: 0x05, Size: 1, Activate: 0},
	Config48VSwitch:          {Offset: 0x06, Size: 1, Activate: 3},
	ConfigDirectMonitorSwitch: {Offset: 0x07, Size: 1, Activate: 4},
	ConfigLevelSwitch:        {Offset: 0x08, Size: 1, Activate: 7},
	ConfigAirSwitch:          {Offset: 0x09, Size: 1, Activate: 8},
	ConfigGainHaloEnable:     {Offset: 0x16, Size: 1, Activate: 9},
	ConfigGainHaloLEDs:       {Offset: 0x17, Size: 1, Activate: 9},
	ConfigGainHaloLevels:     {Offset: 0x1a, Size: 1, Activate: 11},
}

// Devices is the registry of every supported USB product, keyed by
// (vendor, product). Attach looks a descriptor up here before doing
// anything else; an unrecognized product ID is ErrNotSupported.
var Devices = map[[2]uint16]*Device{
	{0x1235, 0x8203}: &scarlett6i6Gen2,
	{0x1235, 0x8204}: &scarlett18i8Gen2,
	{0x1235, 0x8201}: &scarlett18i20Gen2,
	{0x1235, 0x8211}: &scarlettSoloGen3,
	{0x1235, 0x8210}: &scarlett2i2Gen3,
	{0x1235, 0x8212}: &scarlett4i4Gen3,
	{0x1235, 0x8213}: &scarlett8i6Gen3,
	{0x1235, 0x8214}: &scarlett18i8Gen3,
	{0x1235, 0x8215}: &scarlett18i20Gen3,
}

// LookupDevice returns the static descriptor for a USB vendor/product pair.
func LookupDevice(vendor, product uint16) (*Device, bool) {
	d, ok := Devices[[2]uint16{vendor, product}]
	return d, ok
}

var scarlett6i6Gen2 = Device{
	USBVendor: 0x1235, USBProduct: 0x8203, Name: "Scarlett 6i6 2nd Gen",
	LevelInputCount: 2,
	PadInputCount:   2,
	HasMux:          true,
	HasMixer:        true,
	HasSwConfig:     true,
	HasMeters:       true,
	HasHWVolume:     true,
	MuxSize:         [portDirectionCount]int{42, 42, 42, 42, 42},
	Config:          scarlettProConfig,
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{4, 4, 4, 4, 4}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypeSPDIF:    {WireBase: 0x180, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "S/PDIF In %d", SrcNumOffset: 1, DstFormat: "S/PDIF Out %d"},
		PortTypeMix:      {WireBase: 0x300, Count: [portDirectionCount]int{10, 18, 18, 18, 18}, SrcFormat: "Mix %c Out", SrcNumOffset: 'A', DstFormat: "Mix In %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{6, 6, 6, 6, 6}, SrcFormat: "PCM In %d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

var scarlett18i8Gen2 = Device{
	USBVendor: 0x1235, USBProduct: 0x8204, Name: "Scarlett 18i8 2nd Gen",
	LevelInputCount: 2,
	PadInputCount:   4,
	HasMux:          true,
	HasMixer:        true,
	HasSwConfig:     true,
	HasMeters:       true,
	HasHWVolume:     true,
	MuxSize:         [portDirectionCount]int{60, 60, 60, 56, 50},
	Config:          scarlettProConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Monitor L"}, {PortOut, PortTypeAnalogue, 1, "Monitor R"},
		{PortOut, PortTypeAnalogue, 2, "Headphones 1 L"}, {PortOut, PortTypeAnalogue, 3, "Headphones 1 R"},
		{PortOut, PortTypeAnalogue, 4, "Headphones 2 L"}, {PortOut, PortTypeAnalogue, 5, "Headphones 2 R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{8, 6, 6, 6, 6}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypeSPDIF:    {WireBase: 0x180, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "S/PDIF In %d", SrcNumOffset: 1, DstFormat: "S/PDIF Out %d"},
		PortTypeADAT:     {WireBase: 0x200, Count: [portDirectionCount]int{8, 0, 0, 0, 0}, SrcFormat: "ADAT In %d", SrcNumOffset: 1, DstFormat: "ADAT Out %d"},
		PortTypeMix:      {WireBase: 0x300, Count: [portDirectionCount]int{10, 18, 18, 18, 18}, SrcFormat: "Mix %c Out", SrcNumOffset: 'A', DstFormat: "Mix In %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{8, 18, 18, 14, 10}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

// scarlett18i20AnalogueOutRemap reorders the 18i20's rear analogue output
// jacks so that control ordering matches the panel labeling rather than
// the raw wire index.
var scarlett18i20AnalogueOutRemap = []int{0, 1, 4, 5, 6, 7, 2, 3}

var scarlett18i20Gen2 = Device{
	USBVendor: 0x1235, USBProduct: 0x8201, Name: "Scarlett 18i20 2nd Gen",
	LineOutHWVol: true,
	ButtonCount:  2,
	HasMux:       true,
	HasMixer:     true,
	HasSwConfig:  true,
	HasMeters:    true,
	HasHWVolume:  true,
	MuxSize:      [portDirectionCount]int{77, 77, 77, 73, 46},
	Config:       scarlettProConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Monitor L"}, {PortOut, PortTypeAnalogue, 1, "Monitor R"},
		{PortOut, PortTypeAnalogue, 6, "Headphones 1 L"}, {PortOut, PortTypeAnalogue, 7, "Headphones 1 R"},
		{PortOut, PortTypeAnalogue, 8, "Headphones 2 L"}, {PortOut, PortTypeAnalogue, 9, "Headphones 2 R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{8, 10, 10, 10, 10}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d", DstRemap: scarlett18i20AnalogueOutRemap},
		PortTypeSPDIF:    {WireBase: 0x180, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "S/PDIF In %d", SrcNumOffset: 1, DstFormat: "S/PDIF Out %d"},
		PortTypeADAT:     {WireBase: 0x200, Count: [portDirectionCount]int{8, 8, 8, 4, 0}, SrcFormat: "ADAT In %d", SrcNumOffset: 1, DstFormat: "ADAT Out %d"},
		PortTypeMix:      {WireBase: 0x300, Count: [portDirectionCount]int{10, 18, 18, 18, 18}, SrcFormat: "Mix %c Out", SrcNumOffset: 'A', DstFormat: "Mix In %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{20, 18, 18, 14, 10}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

var scarlettSoloGen3 = Device{
	USBVendor: 0x1235, USBProduct: 0x8211, Name: "Scarlett Solo 3rd Gen",
	LevelInputCount:   1,
	LevelInputOffset:  1,
	LevelInputBitmask: true,
	AirInputCount:     1,
	AirInputBitmask:   true,
	HasDirectMonitor:  1,
	Phantom48VCount:   1,
	HasRetain48V:      true,
	ConfigSize:        29,
	GainHalosCount:    2,
	Config:            scarlettHomeConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Headphones L"}, {PortOut, PortTypeAnalogue, 1, "Headphones R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

var scarlett2i2Gen3 = Device{
	USBVendor: 0x1235, USBProduct: 0x8210, Name: "Scarlett 2i2 3rd Gen",
	LevelInputCount:   2,
	LevelInputBitmask: true,
	AirInputCount:     2,
	AirInputBitmask:   true,
	HasDirectMonitor:  2,
	Phantom48VCount:   1,
	HasRetain48V:      true,
	ConfigSize:        29,
	GainHalosCount:    2,
	Config:            scarlettHomeConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Headphones L"}, {PortOut, PortTypeAnalogue, 1, "Headphones R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

var scarlett4i4Gen3 = Device{
	USBVendor: 0x1235, USBProduct: 0x8212, Name: "Scarlett 4i4 3rd Gen",
	LevelInputCount: 2,
	PadInputCount:   2,
	AirInputCount:   2,
	Phantom48VCount: 1,
	HasMSDMode:      true,
	HasMux:          true,
	HasMixer:        true,
	HasSwConfig:     true,
	HasMeters:       true,
	HasHWVolume:     true,
	Config:          scarlettProConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Monitor L"}, {PortOut, PortTypeAnalogue, 1, "Monitor R"},
		{PortOut, PortTypeAnalogue, 2, "Headphones L"}, {PortOut, PortTypeAnalogue, 3, "Headphones R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{4, 4, 4, 4, 4}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{4, 6, 6, 6, 6}, SrcFormat: "PCM In %d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

var scarlett8i6Gen3 = Device{
	USBVendor: 0x1235, USBProduct: 0x8213, Name: "Scarlett 8i6 3rd Gen",
	LevelInputCount: 2,
	PadInputCount:   2,
	AirInputCount:   2,
	Phantom48VCount: 1,
	HasMSDMode:      true,
	HasRetain48V:    true,
	HasMux:          true,
	HasMixer:        true,
	HasSwConfig:     true,
	HasMeters:       true,
	HasHWVolume:     true,
	MuxSize:         [portDirectionCount]int{42, 42, 42, 42, 42},
	Config:          scarlettProConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Headphones 1 L"}, {PortOut, PortTypeAnalogue, 1, "Headphones 1 R"},
		{PortOut, PortTypeAnalogue, 2, "Headphones 2 L"}, {PortOut, PortTypeAnalogue, 3, "Headphones 2 R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{6, 4, 4, 4, 4}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypeSPDIF:    {WireBase: 0x180, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "S/PDIF In %d", SrcNumOffset: 1, DstFormat: "S/PDIF Out %d"},
		PortTypeMix:      {WireBase: 0x300, Count: [portDirectionCount]int{8, 8, 8, 8, 8}, SrcFormat: "Mix %c Out", SrcNumOffset: 'A', DstFormat: "Mix In %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{6, 10, 10, 10, 10}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

// scarlett18i8Gen3AnalogueOutRemap reorders the 18i8 Gen 3's rear analogue
// output jacks so that control ordering matches the panel labeling rather
// than the raw wire index.
var scarlett18i8Gen3AnalogueOutRemap = []int{0, 1, 6, 7, 2, 3, 4, 5}

var scarlett18i8Gen3 = Device{
	USBVendor: 0x1235, USBProduct: 0x8214, Name: "Scarlett 18i8 3rd Gen",
	LineOutHWVol:        true,
	ButtonCount:         2,
	LevelInputCount:     2,
	PadInputCount:       4,
	AirInputCount:       4,
	Phantom48VCount:     2,
	HasMSDMode:          true,
	HasSpeakerSwitching: true,
	HasRetain48V:        true,
	HasMux:              true,
	HasMixer:            true,
	HasSwConfig:         true,
	HasMeters:           true,
	HasHWVolume:         true,
	GainHalosCount:      4,
	MuxSize:             [portDirectionCount]int{60, 60, 60, 56, 50},
	Config:              scarlettProConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Main Monitor L"}, {PortOut, PortTypeAnalogue, 1, "Main Monitor R"},
		{PortOut, PortTypeAnalogue, 2, "Headphones 1 L"}, {PortOut, PortTypeAnalogue, 3, "Headphones 1 R"},
		{PortOut, PortTypeAnalogue, 4, "Headphones 2 L"}, {PortOut, PortTypeAnalogue, 5, "Headphones 2 R"},
		{PortOut, PortTypeAnalogue, 6, "Alt Monitor L"}, {PortOut, PortTypeAnalogue, 7, "Alt Monitor R"},
		{PortOut, PortTypePCM, 10, "Loopback L"}, {PortOut, PortTypePCM, 11, "Loopback R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{8, 8, 8, 8, 8}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d", DstRemap: scarlett18i8Gen3AnalogueOutRemap},
		PortTypeSPDIF:    {WireBase: 0x180, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "S/PDIF In %d", SrcNumOffset: 1, DstFormat: "S/PDIF Out %d"},
		PortTypeADAT:     {WireBase: 0x200, Count: [portDirectionCount]int{8, 0, 0, 0, 0}, SrcFormat: "ADAT In %d", SrcNumOffset: 1, DstFormat: "ADAT Out %d"},
		PortTypeMix:      {WireBase: 0x300, Count: [portDirectionCount]int{10, 20, 20, 20, 20}, SrcFormat: "Mix %c Out", SrcNumOffset: 'A', DstFormat: "Mix In %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{8, 20, 20, 16, 10}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}

var scarlett18i20Gen3 = Device{
	USBVendor: 0x1235, USBProduct: 0x8215, Name: "Scarlett 18i20 3rd Gen",
	LineOutHWVol:        true,
	ButtonCount:         2,
	LevelInputCount:     2,
	PadInputCount:       8,
	AirInputCount:       8,
	Phantom48VCount:     2,
	HasMSDMode:          true,
	HasSpeakerSwitching: true,
	HasTalkback:         true,
	HasRetain48V:        true,
	HasMux:              true,
	HasMixer:            true,
	HasSwConfig:         true,
	HasMeters:           true,
	HasHWVolume:         true,
	MuxSize:             [portDirectionCount]int{77, 77, 77, 73, 46},
	Config:              scarlettProConfig,
	Names: []NamedPort{
		{PortOut, PortTypeAnalogue, 0, "Main Monitor L"}, {PortOut, PortTypeAnalogue, 1, "Main Monitor R"},
		{PortOut, PortTypeAnalogue, 2, "Alt Monitor L"}, {PortOut, PortTypeAnalogue, 3, "Alt Monitor R"},
		{PortOut, PortTypeAnalogue, 6, "Headphones 1 L"}, {PortOut, PortTypeAnalogue, 7, "Headphones 1 R"},
		{PortOut, PortTypeAnalogue, 8, "Headphones 2 L"}, {PortOut, PortTypeAnalogue, 9, "Headphones 2 R"},
		{PortOut, PortTypePCM, 8, "Loopback L"}, {PortOut, PortTypePCM, 9, "Loopback R"},
	},
	Ports: [portTypeCount]PortLayout{
		PortTypeAnalogue: {WireBase: 0x080, Count: [portDirectionCount]int{8, 10, 10, 10, 10}, SrcFormat: "Analogue In %02d", SrcNumOffset: 1, DstFormat: "Analogue Out %02d"},
		PortTypeSPDIF:    {WireBase: 0x180, Count: [portDirectionCount]int{2, 2, 2, 2, 2}, SrcFormat: "S/PDIF In %d", SrcNumOffset: 1, DstFormat: "S/PDIF Out %d"},
		PortTypeADAT:     {WireBase: 0x200, Count: [portDirectionCount]int{8, 8, 8, 8, 0}, SrcFormat: "ADAT In %d", SrcNumOffset: 1, DstFormat: "ADAT Out %d"},
		PortTypeMix:      {WireBase: 0x300, Count: [portDirectionCount]int{12, 24, 24, 24, 24}, SrcFormat: "Mix %c Out", SrcNumOffset: 'A', DstFormat: "Mix In %02d"},
		PortTypePCM:      {WireBase: 0x600, Count: [portDirectionCount]int{20, 20, 20, 18, 10}, SrcFormat: "PCM In %02d", SrcNumOffset: 1, DstFormat: "PCM Out %02d"},
	},
}
