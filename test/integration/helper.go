package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试需要完整的运行环境(API服务+MySQL+Redis),
// 服务未启动时整组跳过,不影响单元测试

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// ServerAddr 探测服务是否在线的地址
	ServerAddr = "localhost:8080"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// SkipIfServerDown 服务未启动时跳过当前测试
func SkipIfServerDown(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", ServerAddr, time.Second)
	if err != nil {
		t.Skipf("API服务未启动(%s),跳过集成测试", ServerAddr)
	}
	conn.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SaleData 售书响应数据
type SaleData struct {
	TransactionID string `json:"transaction_id"`
	Total         int64  `json:"total"`
	Lines         []struct {
		BookID   string `json:"book_id"`
		BookName string `json:"book_name"`
		Quantity int    `json:"quantity"`
		Price    int64  `json:"price"`
		Subtotal int64  `json:"subtotal"`
	} `json:"lines"`
}

// LookupData 单本查询响应(扁平格式,不套信封)
type LookupData struct {
	Success           bool   `json:"success"`
	BookName          string `json:"book_name"`
	Price             int64  `json:"price"`
	AvailableQuantity int    `json:"available_quantity"`
	Cached            bool   `json:"cached"`
	Message           string `json:"message"`
	ErrorType         string `json:"error_type"`
}

// PostJSON 发送POST请求并解析信封响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	body := doRequest(t, "POST", url, data, token)

	var result Response
	err := json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))
	return &result
}

// GetJSON 发送GET请求并解析信封响应
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	body := doRequest(t, "GET", url, nil, token)

	var result Response
	err := json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))
	return &result
}

// GetFlat 发送GET请求并解析扁平响应(旧系统兼容接口)
func GetFlat(t *testing.T, url, token string, out interface{}) {
	t.Helper()
	body := doRequest(t, "GET", url, nil, token)
	require.NoError(t, json.Unmarshal(body, out), "解析JSON响应失败: %s", string(body))
}

func doRequest(t *testing.T, method, url string, data interface{}, token string) []byte {
	t.Helper()

	var reqBody io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")
	return body
}

// GenerateTestUsername 生成唯一的测试用户名(≤20字符)
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().Unix()%1000000000)
}

// GenerateTestBookID 生成唯一的测试图书编号(≤10字符)
func GenerateTestBookID() string {
	return fmt.Sprintf("T%09d", time.Now().UnixNano()%1000000000)
}

// RegisterTestUser 注册测试用户并返回Token
func RegisterTestUser(t *testing.T, prefix string) (username, token string) {
	t.Helper()

	username = GenerateTestUsername(prefix)
	registerReq := map[string]string{
		"username": username,
		"password": "secret123",
	}
	registerResp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginResp := PostJSON(t, BaseURL+"/users/login", registerReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	require.NoError(t, json.Unmarshal(loginResp.Data, &loginData), "解析登录响应失败")
	return username, loginData.AccessToken
}

// AddTestBook 录入测试图书并返回编号
func AddTestBook(t *testing.T, token, name string, price int64, quantity int) string {
	t.Helper()

	bookID := GenerateTestBookID()
	req := map[string]interface{}{
		"book_id":     bookID,
		"book_name":   name,
		"genre":       "测试",
		"author":      "测试作者",
		"publication": "测试出版社",
		"price":       price,
		"quantity":    quantity,
	}
	resp := PostJSON(t, BaseURL+"/books", req, token)
	require.Equal(t, 0, resp.Code, "入库失败: %s", resp.Message)
	return bookID
}
