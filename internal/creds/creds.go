// Package creds 管理 Paycor 登录凭据
// 凭据保存在 .env 文件中，供操作员的抓取工具读取；本仓库自身不执行登录
package creds

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	envUsername = "PAYCOR_USERNAME"
	envPassword = "PAYCOR_PASSWORD"
)

// Credentials Paycor 登录凭据
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Configured 用户名与密码均已填写
func (c Credentials) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// Load 从 .env 文件读取凭据
// 文件不存在视为尚未配置，不报错
func Load(envPath string) (Credentials, error) {
	values, err := godotenv.Read(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("读取 %s 失败: %w", envPath, err)
	}
	return Credentials{
		Username: values[envUsername],
		Password: values[envPassword],
	}, nil
}

// Save 将凭据写入 .env 文件，保留文件中已有的其它键
func Save(envPath string, c Credentials) error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("用户名与密码均不能为空")
	}

	values, err := godotenv.Read(envPath)
	if err != nil {
		// 不存在或无法读取时从头写
		values = map[string]string{}
	}
	values[envUsername] = c.Username
	values[envPassword] = c.Password

	if err := godotenv.Write(values, envPath); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", envPath, err)
	}
	return nil
}
