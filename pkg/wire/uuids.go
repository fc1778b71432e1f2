package wire

// ManufacturerID is the Bluetooth SIG company identifier Ensto devices
// advertise their pairing data under.
const ManufacturerID = 0x2806

// Standard GATT characteristic UUIDs used by the device information and
// generic access services.
const (
	UUIDDeviceName        = "00002a00-0000-1000-8000-00805f9b34fb"
	UUIDModelNumber       = "00002a24-0000-1000-8000-00805f9b34fb"
	UUIDHardwareRevision  = "00002a27-0000-1000-8000-00805f9b34fb"
	UUIDSoftwareRevision  = "00002a28-0000-1000-8000-00805f9b34fb"
	UUIDManufacturerName  = "00002a29-0000-1000-8000-00805f9b34fb"
	UUIDManufacturingDate = "00002a85-0000-1000-8000-00805f9b34fb"
)

// Vendor characteristic UUIDs for the thermostat control service.
const (
	UUIDDateAndTime        = "b43f918a-b084-45c8-9b60-df648c4a4a1e"
	UUIDDaylightSaving     = "e4f66642-ed89-4c73-be57-2158c225bbde"
	UUIDHeatingMode        = "4eb1d6a2-19e0-4809-ba55-4a94e7d9b763"
	UUIDBoost              = "ca3c0685-b708-4cd4-a049-5badd10469e7"
	UUIDPowerControlCycle  = "2cdb1af8-3f3d-4504-b56e-69a2532bc0b8"
	UUIDFloorLimits        = "89b4c78f-6d5e-4cfa-8e81-4eca9738bbfd"
	UUIDChildLock          = "6e3064e2-d9a5-4ca0-9d14-017c59627330"
	UUIDAdaptiveControl    = "c2dc85e9-47bf-4968-9562-d2e1980ed4e4"
	UUIDFloorSensorType    = "f561ce1f-61fb-4fa2-8bef-5fecc949b55b"
	UUIDHeatingPower       = "53b7bf87-6cf0-4790-839a-e72d3afbec44"
	UUIDFloorArea          = "5c897ab6-354c-443d-9f36-f3f7263868dd"
	UUIDRoomCalibration    = "1eca4351-b264-4db6-9c59-af4341d6ce69"
	UUIDLEDBrightness      = "0bee30ff-ed95-4747-bf1b-01a60f5ff4fc"
	UUIDEnergyUnit         = "ccf1fe7b-d928-45b1-abba-7a915f2f0c64"
	UUIDAlarmCode          = "644b0534-cdc5-4538-8ba5-1408df8849d4"
	UUIDCalendarControl    = "8219bc38-a505-4452-8b6c-165e75cff5db"
	UUIDCalendarDay        = "20db94b9-bd18-4f84-bf16-de1163adfd8c"
	UUIDCalendarMode       = "636d45fd-d7be-491f-966c-380f8631b2c6"
	UUIDVacationTime       = "6584e9c6-4784-41aa-ac09-c899191048ae"
	UUIDFactoryResetID     = "f366dddb-ebe2-43ee-83c0-472ded74c8fa"
	UUIDMonitoringData     = "ecc794d2-c790-4abd-88a5-79abf9417908"
	UUIDRealTimeIndication = "66ad3e6b-3135-4ada-bb2b-8b22916b21d4"
	UUIDPowerConsumption   = "c1686f28-fa1b-4791-9eca-35523fb3597e"
	UUIDForceControl       = "7bd74f74-ffae-452e-bb61-b59b2faf96c9"
)
