package scenario

import "math"

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// jitter returns a small zero-mean noise term derived from a uniform
// [0,1) draw, scaled to +/-amplitude.
func jitter(u float64, amplitude float64) float64 {
	return (u*2 - 1) * amplitude
}

// evaluate computes the deterministic vehicle state for scenario name at
// elapsedSeconds, given one uniform random draw per call for jitter. Every
// curve is a closed-form function of elapsed time so the same (name, seed,
// advance sequence) always reproduces the same frame stream (spec.md §6:
// "deterministic scenario generator").
func evaluate(name Name, elapsedSeconds float64, u float64) VehicleState {
	t := elapsedSeconds
	var s VehicleState
	s.AmbientTemp = 20

	switch name {
	case Idle:
		s.EngineSpeed = 700 + 15*math.Sin(t/3) + jitter(u, 5)
		s.WheelSpeed = 0
		s.CurrentGear = 0
		s.PedalPosition = 0
		s.CoolantTemp = 90 - 70*math.Exp(-t/120)
		s.OilPressure = 250 + jitter(u, 5)
		s.FuelRate = 1.2
		s.BoostPressure = 0
		s.BatteryVoltage = 13.8 + jitter(u, 0.2)
		s.TransOilTemp = s.CoolantTemp - 5
		s.FuelLevel1 = clamp(80-t*0.0005, 0, 100)
		s.EngineHours = t / 3600

	case Highway:
		s.EngineSpeed = 1800 + jitter(u, 40)
		s.WheelSpeed = 100 + jitter(u, 3)
		s.CurrentGear = 6
		s.PedalPosition = 35 + jitter(u, 3)
		s.CoolantTemp = 92
		s.OilPressure = 320
		s.FuelRate = 18
		s.BoostPressure = 140
		s.BatteryVoltage = 14.2
		s.TransOilTemp = 85
		s.FuelLevel1 = clamp(80-t*0.002, 0, 100)
		s.EngineHours = t / 3600

	case City:
		wheel := clamp(25+25*math.Sin(t/20), 0, 60)
		s.WheelSpeed = wheel
		s.EngineSpeed = 900 + wheel*15 + jitter(u, 20)
		s.PedalPosition = clamp(10+wheel*0.3, 0, 100)
		s.CurrentGear = math.Trunc(1 + wheel/15)
		s.CoolantTemp = 88
		s.OilPressure = 280
		s.FuelRate = 8
		s.BoostPressure = 40
		s.BatteryVoltage = 14.0
		s.TransOilTemp = 80
		s.FuelLevel1 = clamp(80-t*0.0015, 0, 100)
		s.EngineHours = t / 3600

	case ColdStart:
		s.CoolantTemp = clamp(-10+100*(1-math.Exp(-t/180)), -10, 90)
		s.EngineSpeed = 700 + 400*math.Exp(-t/180) + jitter(u, 10)
		s.WheelSpeed = 0
		s.CurrentGear = 0
		s.PedalPosition = 0
		s.OilPressure = 250 * (1 - math.Exp(-t/3))
		s.FuelRate = 1.0 + 0.5*math.Exp(-t/60)
		s.BoostPressure = 0
		s.BatteryVoltage = 14.2 - 2.4*math.Exp(-t/5)
		s.TransOilTemp = s.CoolantTemp - 10
		s.FuelLevel1 = 70
		s.EngineHours = t / 3600
		s.AmbientTemp = -5

	case Acceleration:
		pedal := clamp(t*10, 0, 100)
		wheel := clamp(t*12, 0, 140)
		s.PedalPosition = pedal
		s.WheelSpeed = wheel
		s.EngineSpeed = 800 + pedal*22 + jitter(u, 15)
		s.CurrentGear = math.Trunc(clamp(1+wheel/20, 1, 8))
		s.CoolantTemp = 90
		s.OilPressure = 300
		s.FuelRate = 5 + pedal*0.3
		s.BoostPressure = pedal * 1.5
		s.BatteryVoltage = 14.1
		s.TransOilTemp = 85
		s.FuelLevel1 = clamp(80-t*0.003, 0, 100)
		s.EngineHours = t / 3600

	case FaultInjection:
		s = evaluate(Idle, t, u)

	default:
		s = evaluate(Idle, t, u)
	}
	return s
}
