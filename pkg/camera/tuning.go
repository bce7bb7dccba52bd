// pkg/camera/tuning.go
package camera

import "fmt"

// Tuning is the static configuration table for the chase camera. Like
// the flight table it is selected once per session and never mutated.
type Tuning struct {
	// Chase geometry, in world units.
	Distance        float64 `json:"distance"`
	Height          float64 `json:"height"`
	PitchHeightGain float64 `json:"pitchHeightGain"`
	BankOffsetGain  float64 `json:"bankOffsetGain"`
	BankOffsetMax   float64 `json:"bankOffsetMax"`
	RollHeightGain  float64 `json:"rollHeightGain"`

	// Reduced-influence copy of the airframe attitude. Extreme
	// attitudes should not whip the view as hard as the airframe.
	PitchInfluence float64 `json:"pitchInfluence"`
	YawInfluence   float64 `json:"yawInfluence"`
	RollInfluence  float64 `json:"rollInfluence"`

	// Thrust and afterburner effects.
	ThrustPullback      float64 `json:"thrustPullback"`
	ThrustDrop          float64 `json:"thrustDrop"`
	AfterburnerPullback float64 `json:"afterburnerPullback"`
	AfterburnerWobble   float64 `json:"afterburnerWobble"`
	AfterburnerShake    float64 `json:"afterburnerShake"`

	// Field of view, in degrees.
	BaseFOV            float64 `json:"baseFov"`
	MinFOV             float64 `json:"minFov"`
	MaxFOV             float64 `json:"maxFov"`
	MaxFOVDelta        float64 `json:"maxFovDelta"`
	FOVThrustGain      float64 `json:"fovThrustGain"`
	FOVAfterburnerGain float64 `json:"fovAfterburnerGain"`
	FOVRate            float64 `json:"fovRate"`
	CooldownFOVFactor  float64 `json:"cooldownFovFactor"`
	FOVRelaxRate       float64 `json:"fovRelaxRate"`
	FOVSnap            float64 `json:"fovSnap"` // degrees from baseline that snap to it

	// Reverse-thrust zoom.
	ReverseZoomMinSpeed   float64 `json:"reverseZoomMinSpeed"`
	ReversePull           float64 `json:"reversePull"`
	ReverseLift           float64 `json:"reverseLift"`
	ReverseFOVNarrow      float64 `json:"reverseFovNarrow"`
	ReverseFOVRate        float64 `json:"reverseFovRate"`
	ReverseShakeThreshold float64 `json:"reverseShakeThreshold"`
	ReverseShakeFreq      float64 `json:"reverseShakeFreq"`
	ReverseShakeAmp       float64 `json:"reverseShakeAmp"`

	// Weapon-fire recoil and the prolonged-fire overheat group.
	RecoilBuild      float64 `json:"recoilBuild"`
	RecoilDecay      float64 `json:"recoilDecay"`
	RecoilPullback   float64 `json:"recoilPullback"`
	RecoilLift       float64 `json:"recoilLift"`
	RecoilVibFreq1   float64 `json:"recoilVibFreq1"`
	RecoilVibFreq2   float64 `json:"recoilVibFreq2"`
	RecoilVibAmp     float64 `json:"recoilVibAmp"`
	RecoilShake      float64 `json:"recoilShake"`
	RecoilFOVBump    float64 `json:"recoilFovBump"`
	ProlongedAmplify float64 `json:"prolongedAmplify"`
	OverheatFreq     float64 `json:"overheatFreq"`
	OverheatAmp      float64 `json:"overheatAmp"`
	OverheatFOV      float64 `json:"overheatFov"`
	LookRecoilLift   float64 `json:"lookRecoilLift"`
	LookRecoilJitter float64 `json:"lookRecoilJitter"`

	// Turn side force and shake aggregation.
	TurnSideGain   float64 `json:"turnSideGain"`
	HighPowerShake float64 `json:"highPowerShake"`
	GShakeStart    float64 `json:"gShakeStart"`
	GShakeGain     float64 `json:"gShakeGain"`
	MaxShake       float64 `json:"maxShake"`
	ShakeScale     float64 `json:"shakeScale"`

	// Temporal smoothing and jump suppression.
	SmoothingRate     float64 `json:"smoothingRate"`
	LagBase           float64 `json:"lagBase"`
	LagPowerGain      float64 `json:"lagPowerGain"`
	CooldownLag       float64 `json:"cooldownLag"`
	CooldownBoostMix  float64 `json:"cooldownBoostMix"`
	CooldownIdleMix   float64 `json:"cooldownIdleMix"`
	JumpThreshold     float64 `json:"jumpThreshold"`
	RiskyJumpLimit    float64 `json:"riskyJumpLimit"`
	RiskyWindow       float64 `json:"riskyWindow"` // seconds after afterburner release
	MaxStep           float64 `json:"maxStep"`
	MaxMotionPerFrame float64 `json:"maxMotionPerFrame"`

	// Look target and up vector.
	LookAhead      float64 `json:"lookAhead"`
	LookAheadBoost float64 `json:"lookAheadBoost"`
	UpRollLean     float64 `json:"upRollLean"`

	// RandSeed fixes the rig's shake noise. Zero seeds from the wall
	// clock.
	RandSeed int64 `json:"randSeed,omitempty"`
}

// DefaultTuning returns the stock chase camera setup.
func DefaultTuning() Tuning {
	return Tuning{
		Distance:        14,
		Height:          4.5,
		PitchHeightGain: 2.5,
		BankOffsetGain:  3.5,
		BankOffsetMax:   4,
		RollHeightGain:  1.2,

		PitchInfluence: 0.6,
		YawInfluence:   1.0,
		RollInfluence:  0.35,

		ThrustPullback:      3.2,
		ThrustDrop:          0.9,
		AfterburnerPullback: 0.8,
		AfterburnerWobble:   0.6,
		AfterburnerShake:    0.5,

		BaseFOV:            70,
		MinFOV:             40,
		MaxFOV:             110,
		MaxFOVDelta:        18,
		FOVThrustGain:      12,
		FOVAfterburnerGain: 0.9,
		FOVRate:            4.5,
		CooldownFOVFactor:  0.45,
		FOVRelaxRate:       3,
		FOVSnap:            0.05,

		ReverseZoomMinSpeed:   30,
		ReversePull:           2.6,
		ReverseLift:           1.1,
		ReverseFOVNarrow:      12,
		ReverseFOVRate:        3.5,
		ReverseShakeThreshold: 0.6,
		ReverseShakeFreq:      11,
		ReverseShakeAmp:       0.35,

		RecoilBuild:      2.2,
		RecoilDecay:      1.6,
		RecoilPullback:   1.4,
		RecoilLift:       0.5,
		RecoilVibFreq1:   37,
		RecoilVibFreq2:   53,
		RecoilVibAmp:     0.22,
		RecoilShake:      0.3,
		RecoilFOVBump:    2.5,
		ProlongedAmplify: 1.6,
		OverheatFreq:     2.2,
		OverheatAmp:      0.6,
		OverheatFOV:      1.5,
		LookRecoilLift:   0.8,
		LookRecoilJitter: 0.5,

		TurnSideGain:   0.12,
		HighPowerShake: 0.5,
		GShakeStart:    4,
		GShakeGain:     0.12,
		MaxShake:       2.5,
		ShakeScale:     0.35,

		SmoothingRate:     8,
		LagBase:           5,
		LagPowerGain:      3,
		CooldownLag:       1.8,
		CooldownBoostMix:  0.8,
		CooldownIdleMix:   0.3,
		JumpThreshold:     40,
		RiskyJumpLimit:    10,
		RiskyWindow:       1.2,
		MaxStep:           6,
		MaxMotionPerFrame: 8,

		LookAhead:      0.6,
		LookAheadBoost: 0.5,
		UpRollLean:     0.18,
	}
}

// Validate checks the camera table for values the rig cannot work with.
func (t Tuning) Validate() error {
	if t.Distance <= 0 {
		return fmt.Errorf("distance must be positive, got %v", t.Distance)
	}
	if t.MinFOV <= 0 || t.MaxFOV <= t.MinFOV {
		return fmt.Errorf("fov bounds [%v, %v] are invalid", t.MinFOV, t.MaxFOV)
	}
	if t.BaseFOV < t.MinFOV || t.BaseFOV > t.MaxFOV {
		return fmt.Errorf("baseFov %v must sit inside [%v, %v]", t.BaseFOV, t.MinFOV, t.MaxFOV)
	}
	if t.MaxFOVDelta < 0 {
		return fmt.Errorf("maxFovDelta must not be negative, got %v", t.MaxFOVDelta)
	}
	if t.JumpThreshold <= 0 || t.RiskyJumpLimit <= 0 {
		return fmt.Errorf("jump thresholds [%v, %v] must be positive", t.JumpThreshold, t.RiskyJumpLimit)
	}
	if t.RiskyJumpLimit > t.JumpThreshold {
		return fmt.Errorf("riskyJumpLimit %v must not exceed jumpThreshold %v", t.RiskyJumpLimit, t.JumpThreshold)
	}
	if t.MaxStep <= 0 || t.MaxMotionPerFrame <= 0 {
		return fmt.Errorf("step bounds [%v, %v] must be positive", t.MaxStep, t.MaxMotionPerFrame)
	}
	if t.SmoothingRate <= 0 {
		return fmt.Errorf("smoothingRate must be positive, got %v", t.SmoothingRate)
	}
	if t.CooldownBoostMix < 0 || t.CooldownBoostMix > 1 || t.CooldownIdleMix < 0 || t.CooldownIdleMix > 1 {
		return fmt.Errorf("cooldown mixes [%v, %v] must sit inside [0, 1]", t.CooldownIdleMix, t.CooldownBoostMix)
	}
	return nil
}
