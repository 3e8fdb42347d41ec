package lunar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Can are the ten heavenly stems.
var Can = [10]string{"Giáp", "Ất", "Bính", "Đinh", "Mậu", "Kỷ", "Canh", "Tân", "Nhâm", "Quý"}

// Chi are the twelve earthly branches.
var Chi = [12]string{"Tý", "Sửu", "Dần", "Mão", "Thìn", "Tỵ", "Ngọ", "Mùi", "Thân", "Dậu", "Tuất", "Hợi"}

// Weekdays starts on Sunday.
var Weekdays = [7]string{"Chủ nhật", "Thứ hai", "Thứ ba", "Thứ tư", "Thứ năm", "Thứ sáu", "Thứ bảy"}

// SolarTerms are the 24 tiết khí, starting at the March equinox.
var SolarTerms = [24]string{
	"Xuân phân", "Thanh minh", "Cốc vũ", "Lập hạ", "Tiểu mãn", "Mang chủng",
	"Hạ chí", "Tiểu thử", "Đại thử", "Lập thu", "Xử thử", "Bạch lộ",
	"Thu phân", "Hàn lộ", "Sương giáng", "Lập đông", "Tiểu tuyết", "Đại tuyết",
	"Đông chí", "Tiểu hàn", "Đại hàn", "Lập xuân", "Vũ thủy", "Kinh trập",
}

// luckyHours marks the lucky two-hour slots, in branch order, of days whose
// branch index modulo 6 selects the row.
var luckyHours = [6]string{
	"110100101100",
	"001101001011",
	"110011010010",
	"101100110100",
	"001011001101",
	"010010110011",
}

const leapSuffix = " (nhuận)"

var asciiFolder = strings.NewReplacer("đ", "d", "Đ", "D")

// ASCII removes Vietnamese diacritics: "Giáp Tý" becomes "Giap Ty".
func ASCII(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		return name
	}
	return asciiFolder.Replace(s)
}
