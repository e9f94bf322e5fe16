package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDewPoint(t *testing.T) {
	// 20℃ / 50% 相对湿度的露点约 9.3℃
	assert.InDelta(t, 9.3, DewPoint(20, 50), 0.1)
	// 饱和空气的露点等于气温
	assert.InDelta(t, 20, DewPoint(20, 100), 1e-9)
	// 湿度越低露点越低
	assert.Less(t, DewPoint(20, 30), DewPoint(20, 60))
}

func TestCondensationRisk(t *testing.T) {
	// fRsi 低，内表面温度 4℃，远低于 20℃/80% 的露点（约 16.4℃）
	surface, dew, risk := CondensationRisk(0.2, 20, 0, 80)
	assert.InDelta(t, 4, surface, 1e-9)
	assert.InDelta(t, 16.4, dew, 0.1)
	assert.True(t, risk)

	// fRsi 高，内表面温度接近室温，无结露风险
	surface, _, risk = CondensationRisk(0.95, 20, 0, 80)
	assert.InDelta(t, 19, surface, 1e-9)
	assert.False(t, risk)
}
