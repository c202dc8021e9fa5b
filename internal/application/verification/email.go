package verification

import "fmt"

const welcomeSubject = "Welcome aboard!"

func welcomeEmailBody(name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <div style="background-color: #e8f5e8; padding: 20px; border-radius: 8px; text-align: center;">
      <h2>Welcome, %s!</h2>
    </div>
    <p>Your email has been successfully verified. You can now log in and start using your account.</p>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 14px;">
      <p>This is an automated email. Please do not reply.</p>
    </div>
  </div>
</body>
</html>`, name)
}
