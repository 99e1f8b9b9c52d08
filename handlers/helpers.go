package handlers

import (
	"strconv"
	"strings"
)

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// page/size จาก query string (size จำกัด 1..100)
func pageSize(pageStr, sizeStr string) (int, int) {
	page := atoiOr(pageStr, 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(sizeStr, 20)
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}

// pattern สำหรับ LOWER(col) LIKE ? (ใช้ได้ทั้ง postgres และ sqlite ใน tests)
func likePattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}
