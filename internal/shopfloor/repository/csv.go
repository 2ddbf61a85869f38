package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// 数据目录内的固定文件名
const (
	AssembliesFile    = "assemblies.csv"
	PartsFile         = "parts.csv"
	BomItemsFile      = "bom_items.csv"
	StockFile         = "stock.csv"
	BuildHistoryFile  = "build_history.csv"
	PanelHistoryFile  = "panel_history.csv"
	MainInventoryFile = "main_inventory.csv"
)

// ErrMissingSource 必需数据源文件缺失
var ErrMissingSource = errors.New("必需数据源缺失")

// readTable 严格读取一张CSV表：表头必须存在且与schema逐列一致，
// 数据行列数必须与表头完全相同，所有字段读取后先去首尾空白。
// 返回的行不含表头。
func readTable(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return nil, fmt.Errorf("打开文件失败 %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	head, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s: 缺少表头", path)
		}
		return nil, fmt.Errorf("%s: 读取表头失败: %w", path, err)
	}
	for i, want := range header {
		if strings.TrimSpace(head[i]) != want {
			return nil, fmt.Errorf("%s: 表头第%d列应为 %q, 实际为 %q", path, i+1, want, head[i])
		}
	}

	var rows [][]string
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: 第%d行: %w", path, line, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// writeTable 整表重写：先写同目录临时文件再原子重命名，
// 后续读取方不会观察到半写状态。
func writeTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败 %s: %w", path, err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入表头失败 %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("写入数据行失败 %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("刷新写入失败 %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("关闭临时文件失败 %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换文件失败 %s: %w", path, err)
	}
	return nil
}

// appendRow 向追加日志写入一行；文件不存在或为空时先补表头。
func appendRow(path string, header []string, row []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("打开追加文件失败 %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("读取文件状态失败 %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("写入表头失败 %s: %w", path, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("追加记录失败 %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("刷新追加失败 %s: %w", path, err)
	}
	return nil
}

func parseFloat(path string, line int, field, value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%s: 第%d行: 字段 %s 为空", path, line, field)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: 第%d行: 字段 %s 值 %q 不是数字: %w", path, line, field, value, err)
	}
	return v, nil
}

func parseBool(path string, line int, field, value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: 第%d行: 字段 %s 值 %q 不是布尔值: %w", path, line, field, value, err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
