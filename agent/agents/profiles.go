package agents

import (
	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
)

// Profile is the per-service configuration of the shared decision engine.
// FieldOrder controls which missing field is asked for first; grab hire asks
// for the phone before the postcode, the other lines the reverse.
type Profile struct {
	Service          contractx.ServiceType
	DisplayName      string
	DefaultType      string
	FieldOrder       []statex.Field
	ThresholdMessage string
}

func SkipProfile() Profile {
	return Profile{
		Service:     contractx.ServiceSkip,
		DisplayName: "skip hire",
		DefaultType: "8yd",
		FieldOrder: []statex.Field{
			statex.FieldName, statex.FieldPostcode, statex.FieldPhone, statex.FieldService,
		},
	}
}

func ManAndVanProfile() Profile {
	return Profile{
		Service:     contractx.ServiceManAndVan,
		DisplayName: "man & van",
		DefaultType: "small",
		FieldOrder: []statex.Field{
			statex.FieldName, statex.FieldPostcode, statex.FieldPhone, statex.FieldService,
		},
		ThresholdMessage: "Let me connect you with our specialist team for this quote.",
	}
}

func GrabProfile() Profile {
	return Profile{
		Service:     contractx.ServiceGrab,
		DisplayName: "grab hire",
		DefaultType: "6t",
		FieldOrder: []statex.Field{
			statex.FieldName, statex.FieldPhone, statex.FieldPostcode, statex.FieldService,
		},
		ThresholdMessage: "Let me connect you with our specialist team for this service.",
	}
}

func QualifyingProfile() Profile {
	return Profile{
		Service:     contractx.ServiceQualifying,
		DisplayName: "waste collection",
		FieldOrder: []statex.Field{
			statex.FieldName, statex.FieldPostcode, statex.FieldPhone, statex.FieldService,
		},
		ThresholdMessage: "Let me connect you with our specialist team for this quote.",
	}
}
