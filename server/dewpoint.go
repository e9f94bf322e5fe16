package server

import "math"

// 露点计算（Magnus 近似）与结露风险判定
// 属于调用层逻辑：引擎只给出 fRsi，结露判断在这里完成

const (
	magnusA = 17.27
	magnusB = 237.7 // ℃
)

// DewPoint 按 Magnus 近似计算露点温度
// tempC 为空气温度 ℃，relHumidity 为相对湿度百分数 (0, 100]
func DewPoint(tempC, relHumidity float64) float64 {
	gamma := math.Log(relHumidity/100) + magnusA*tempC/(magnusB+tempC)
	return magnusB * gamma / (magnusA - gamma)
}

// CondensationRisk 用 fRsi 反推内表面最低温度，低于露点则有结露风险
func CondensationRisk(fRsi, interiorTemp, exteriorTemp, relHumidity float64) (surfaceTemp, dewPoint float64, risk bool) {
	surfaceTemp = exteriorTemp + fRsi*(interiorTemp-exteriorTemp)
	dewPoint = DewPoint(interiorTemp, relHumidity)
	return surfaceTemp, dewPoint, surfaceTemp < dewPoint
}
