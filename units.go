package ftracker

// Unit conversion constants shared by all training types.
const (
	LenStep         = 0.65  // meters covered by one step
	SwimmingLenStep = 1.38  // meters covered by one stroke
	MInKm           = 1000  // meters in a kilometer
	MinInH          = 60    // minutes in an hour
	SecInH          = 3600  // seconds in an hour
	CmInM           = 100   // centimeters in a meter
	KmhInMsec       = 0.278 // km/h to m/s, 1000/3600 rounded to 3 places
)
