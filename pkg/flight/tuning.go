// pkg/flight/tuning.go
package flight

import "fmt"

// Tuning is the static configuration table for the flight model. It is
// selected once per session; nothing in the simulator mutates it.
type Tuning struct {
	// Speed envelope, in world units per second.
	MinSpeed            float64 `json:"minSpeed"`
	CruiseSpeed         float64 `json:"cruiseSpeed"`
	MaxSpeed            float64 `json:"maxSpeed"`
	MaxAfterburnerSpeed float64 `json:"maxAfterburnerSpeed"`

	// Thrust and propulsion.
	MilitaryThrust        float64 `json:"militaryThrust"`
	ReverseThrustLevel    float64 `json:"reverseThrustLevel"` // negative fraction of military thrust
	IdleDeceleration      float64 `json:"idleDeceleration"`
	ReverseDrag           float64 `json:"reverseDrag"`
	AfterburnerMultiplier float64 `json:"afterburnerMultiplier"`
	AfterburnerRamp       float64 `json:"afterburnerRamp"`
	AfterburnerDecay      float64 `json:"afterburnerDecay"`
	AfterburnerCooldown   float64 `json:"afterburnerCooldown"` // seconds before relight
	ReverseFadeIn         float64 `json:"reverseFadeIn"`       // seconds after afterburner release
	PersistentSpeedDecay  float64 `json:"persistentSpeedDecay"`
	EnginePowerResponse   float64 `json:"enginePowerResponse"`
	ExhaustedThrustFactor float64 `json:"exhaustedThrustFactor"`

	// Fuel, in percent of capacity per second.
	NormalFuelRate        float64 `json:"normalFuelRate"`
	ReverseFuelRate       float64 `json:"reverseFuelRate"`
	AfterburnerFuelRate   float64 `json:"afterburnerFuelRate"`
	RefuelRate            float64 `json:"refuelRate"`
	MinFuelForAfterburner float64 `json:"minFuelForAfterburner"`
	LowFuelWarning        float64 `json:"lowFuelWarning"`

	// Control response.
	MaxRollRate          float64 `json:"maxRollRate"`
	RollRampUp           float64 `json:"rollRampUp"`
	RollDecay            float64 `json:"rollDecay"`
	RollResponse         float64 `json:"rollResponse"`
	RollAuthorityDrop    float64 `json:"rollAuthorityDrop"`
	RollReversalDamping  float64 `json:"rollReversalDamping"`
	YawFactor            float64 `json:"yawFactor"`
	YawDeadZone          float64 `json:"yawDeadZone"` // radians of roll below which no turn couples
	TurnInertia          float64 `json:"turnInertia"`
	ReversePitchCoupling float64 `json:"reversePitchCoupling"`
	BankPitchCoupling    float64 `json:"bankPitchCoupling"`
	LevelingStrength     float64 `json:"levelingStrength"`
	LevelingMomentumDrag float64 `json:"levelingMomentumDrag"`

	// Stability and damping. The damping factors are per frame, not per
	// second.
	BaseAngularDamping    float64 `json:"baseAngularDamping"`
	HighSpeedDampingBonus float64 `json:"highSpeedDampingBonus"`
	JitterThreshold       float64 `json:"jitterThreshold"`
	JitterDamping         float64 `json:"jitterDamping"`

	// Ambient turbulence.
	TurbulenceMinSpeed  float64 `json:"turbulenceMinSpeed"`
	TurbulenceAmplitude float64 `json:"turbulenceAmplitude"`
	HighSpeedTurbulence float64 `json:"highSpeedTurbulence"`

	// Envelope protection.
	MinGForce        float64 `json:"minGForce"`
	MaxGForce        float64 `json:"maxGForce"`
	GForceResponse   float64 `json:"gForceResponse"`
	GSpikeThreshold  float64 `json:"gSpikeThreshold"`
	GSpikeBoost      float64 `json:"gSpikeBoost"`
	ShakeFloorScale  float64 `json:"shakeFloorScale"`
	ShakeDecay       float64 `json:"shakeDecay"` // per frame
	MaxAngleOfAttack float64 `json:"maxAngleOfAttack"`
	AoAMinSpeed      float64 `json:"aoaMinSpeed"`
	AoAResponse      float64 `json:"aoaResponse"`

	// Flight assist. Progress rates are per frame to match the fixed
	// cadence of the recovery animation they drive.
	StallSpeedFactor    float64 `json:"stallSpeedFactor"`
	StallDelayMin       float64 `json:"stallDelayMin"`
	StallDelayMax       float64 `json:"stallDelayMax"`
	AssistProgressRate  float64 `json:"assistProgressRate"`
	AssistProgressDecay float64 `json:"assistProgressDecay"`
	RecoveryThreshold   float64 `json:"recoveryThreshold"`
	RecoveryThrustBase  float64 `json:"recoveryThrustBase"`
	AssistEnergyGate    float64 `json:"assistEnergyGate"`
	AssistSpinDamping   float64 `json:"assistSpinDamping"` // per frame
	AssistCorrection    float64 `json:"assistCorrection"`
	AssistMomentumBias  float64 `json:"assistMomentumBias"`
	RecoveryUpBias      float64 `json:"recoveryUpBias"`

	// RandSeed fixes the simulator's noise source. Zero seeds from the
	// wall clock.
	RandSeed int64 `json:"randSeed,omitempty"`
}

// DefaultTuning returns the stock arcade envelope.
func DefaultTuning() Tuning {
	return Tuning{
		MinSpeed:            10,
		CruiseSpeed:         45,
		MaxSpeed:            100,
		MaxAfterburnerSpeed: 160,

		MilitaryThrust:        60,
		ReverseThrustLevel:    -0.8,
		IdleDeceleration:      0.35,
		ReverseDrag:           0.4,
		AfterburnerMultiplier: 1.8,
		AfterburnerRamp:       1.6,
		AfterburnerDecay:      0.9,
		AfterburnerCooldown:   1.0,
		ReverseFadeIn:         0.8,
		PersistentSpeedDecay:  9,
		EnginePowerResponse:   3.5,
		ExhaustedThrustFactor: 0.4,

		NormalFuelRate:        1.2,
		ReverseFuelRate:       0.6,
		AfterburnerFuelRate:   8,
		RefuelRate:            4,
		MinFuelForAfterburner: 15,
		LowFuelWarning:        20,

		MaxRollRate:          2.4,
		RollRampUp:           3,
		RollDecay:            4.5,
		RollResponse:         6,
		RollAuthorityDrop:    0.4,
		RollReversalDamping:  0.45,
		YawFactor:            0.65,
		YawDeadZone:          0.05,
		TurnInertia:          2.5,
		ReversePitchCoupling: 0.12,
		BankPitchCoupling:    0.1,
		LevelingStrength:     1.4,
		LevelingMomentumDrag: 2,

		BaseAngularDamping:    0.9,
		HighSpeedDampingBonus: 0.06,
		JitterThreshold:       0.002,
		JitterDamping:         0.75,

		TurbulenceMinSpeed:  15,
		TurbulenceAmplitude: 0.12,
		HighSpeedTurbulence: 0.5,

		MinGForce:        1,
		MaxGForce:        9,
		GForceResponse:   3,
		GSpikeThreshold:  0.15,
		GSpikeBoost:      0.8,
		ShakeFloorScale:  0.02,
		ShakeDecay:       0.9,
		MaxAngleOfAttack: 30,
		AoAMinSpeed:      5,
		AoAResponse:      5,

		StallSpeedFactor:    1.1,
		StallDelayMin:       2,
		StallDelayMax:       4,
		AssistProgressRate:  0.01,
		AssistProgressDecay: 0.04,
		RecoveryThreshold:   0.3,
		RecoveryThrustBase:  0.6,
		AssistEnergyGate:    0.5,
		AssistSpinDamping:   0.9,
		AssistCorrection:    1.8,
		AssistMomentumBias:  0.35,
		RecoveryUpBias:      0.15,
	}
}

// Validate checks the tuning table for values the integrator cannot
// work with.
func (t Tuning) Validate() error {
	if t.MinSpeed <= 0 {
		return fmt.Errorf("minSpeed must be positive, got %v", t.MinSpeed)
	}
	if t.MaxSpeed <= t.MinSpeed {
		return fmt.Errorf("maxSpeed %v must exceed minSpeed %v", t.MaxSpeed, t.MinSpeed)
	}
	if t.MaxAfterburnerSpeed < t.MaxSpeed {
		return fmt.Errorf("maxAfterburnerSpeed %v must be at least maxSpeed %v", t.MaxAfterburnerSpeed, t.MaxSpeed)
	}
	if t.CruiseSpeed < t.MinSpeed || t.CruiseSpeed > t.MaxSpeed {
		return fmt.Errorf("cruiseSpeed %v must sit between minSpeed %v and maxSpeed %v", t.CruiseSpeed, t.MinSpeed, t.MaxSpeed)
	}
	if t.MilitaryThrust <= 0 {
		return fmt.Errorf("militaryThrust must be positive, got %v", t.MilitaryThrust)
	}
	if t.ReverseThrustLevel >= 0 {
		return fmt.Errorf("reverseThrustLevel must be negative, got %v", t.ReverseThrustLevel)
	}
	if t.AfterburnerMultiplier < 1 {
		return fmt.Errorf("afterburnerMultiplier must be at least 1, got %v", t.AfterburnerMultiplier)
	}
	if t.MinFuelForAfterburner < 0 || t.MinFuelForAfterburner > 100 {
		return fmt.Errorf("minFuelForAfterburner %v must be within [0, 100]", t.MinFuelForAfterburner)
	}
	if t.StallDelayMin < 0 || t.StallDelayMax < t.StallDelayMin {
		return fmt.Errorf("stall delay window [%v, %v] is invalid", t.StallDelayMin, t.StallDelayMax)
	}
	if t.StallSpeedFactor < 1 {
		return fmt.Errorf("stallSpeedFactor must be at least 1, got %v", t.StallSpeedFactor)
	}
	if t.MaxGForce < t.MinGForce {
		return fmt.Errorf("gforce bounds [%v, %v] are inverted", t.MinGForce, t.MaxGForce)
	}
	if t.BaseAngularDamping <= 0 || t.BaseAngularDamping+t.HighSpeedDampingBonus >= 1 {
		return fmt.Errorf("angular damping %v (+%v at speed) must stay inside (0, 1)",
			t.BaseAngularDamping, t.HighSpeedDampingBonus)
	}
	if t.RecoveryThreshold <= 0 || t.RecoveryThreshold >= 1 {
		return fmt.Errorf("recoveryThreshold %v must be inside (0, 1)", t.RecoveryThreshold)
	}
	return nil
}
